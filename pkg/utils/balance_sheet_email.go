package utils

import (
	"fmt"
	"html"
	"time"
)

func SendBalanceSheetEmail(m Mailer, to, name string, generatedAt time.Time, pdf Attachment) error {
	subject := fmt.Sprintf("Your expense balance sheet (%s)", generatedAt.Format("January 02, 2006"))

	body := fmt.Sprintf(`
	<!DOCTYPE html>
	<html lang="en">
	<head>
	<meta charset="UTF-8">
	<title>Balance Sheet</title>
	<style>
		body { font-family: 'Segoe UI', Roboto, Arial, sans-serif; background-color: #f4f6f8; color: #333; }
		.container { max-width: 480px; margin: 25px auto; background: #ffffff; border-radius: 12px; border-top: 5px solid #2e7d32; }
		.header { background-color: #2e7d32; color: #ffffff; text-align: center; padding: 18px 12px; }
		.content { padding: 20px 18px; font-size: 14px; line-height: 1.6; }
	</style>
	</head>
	<body>
	<div class="container">
		<div class="header"><h1>Expense Balance Sheet</h1></div>
		<div class="content">
			<p>Hi %s,</p>
			<p>Your balance sheet generated on %s is attached as <strong>%s</strong>.</p>
		</div>
	</div>
	</body>
	</html>
	`, html.EscapeString(name), generatedAt.Format("January 02, 2006 15:04"), html.EscapeString(pdf.Name))

	return m.Send(to, subject, body, pdf)
}

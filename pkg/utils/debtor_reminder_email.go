package utils

import (
	"fmt"
	"html"
	"strings"
)

// OwedLine is one creditor the reminded user still owes money to.
type OwedLine struct {
	Creditor string
	Amount   string
}

func SendDebtorReminderEmail(m Mailer, to, name, currency string, lines []OwedLine) error {
	subject := fmt.Sprintf("Reminder: you have %d open balance(s)", len(lines))

	var rows strings.Builder
	for _, l := range lines {
		fmt.Fprintf(&rows, `<tr><td>%s</td><td class="amount">%s %s</td></tr>`,
			html.EscapeString(l.Creditor), html.EscapeString(currency), html.EscapeString(l.Amount))
	}

	body := fmt.Sprintf(`
	<!DOCTYPE html>
	<html lang="en">
	<head>
	<meta charset="UTF-8">
	<title>Payment Reminder</title>
	<style>
		body { font-family: 'Segoe UI', Roboto, Arial, sans-serif; background-color: #f6f8f7; color: #333; }
		.container { max-width: 480px; margin: 25px auto; background: #ffffff; border-radius: 12px; border-top: 5px solid #d9534f; }
		.header { background-color: #d9534f; color: #ffffff; text-align: center; padding: 18px 12px; }
		.content { padding: 20px 18px; font-size: 14px; line-height: 1.6; }
		table { width: 100%%; border-collapse: collapse; }
		td { padding: 6px 4px; border-bottom: 1px solid #eee; }
		.amount { text-align: right; font-weight: 600; color: #d9534f; }
	</style>
	</head>
	<body>
	<div class="container">
		<div class="header"><h1>Payment Reminder</h1></div>
		<div class="content">
			<p>Hi %s,</p>
			<p>You still owe the following people for shared expenses:</p>
			<table>%s</table>
			<p>Settle up when you can so everyone's balance stays clear.</p>
		</div>
	</div>
	</body>
	</html>
	`, html.EscapeString(name), rows.String())

	return m.Send(to, subject, body)
}

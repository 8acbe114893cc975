package utils

import (
	"fmt"
	"html"
	"time"
)

func SendWelcomeEmail(m Mailer, to, name string) error {
	subject := fmt.Sprintf("Welcome to Expense Share, %s!", name)

	body := fmt.Sprintf(`
	<!DOCTYPE html>
	<html lang="en">
	<head>
		<meta charset="UTF-8" />
		<title>Welcome to Expense Share</title>
		<style>
			body { font-family: 'Segoe UI', Roboto, Arial, sans-serif; background-color: #f9fbfa; margin: 0; padding: 0; }
			.container { max-width: 560px; margin: 40px auto; background: #ffffff; border-radius: 14px; border-top: 6px solid #00795f; }
			.header { background-color: #00795f; color: #ffffff; text-align: center; padding: 28px 20px; }
			.content { padding: 28px 32px; color: #333333; font-size: 15px; line-height: 1.8; }
			.footer { background: #f0f8f4; text-align: center; padding: 18px; font-size: 13px; color: #666666; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header"><h1>Welcome to Expense Share</h1></div>
			<div class="content">
				<p>Hey %s,</p>
				<p>You can now be added to shared expenses. Whenever someone records an expense you are part of,
				your share shows up in your balances, and you can download or email yourself a balance sheet at any time.</p>
				<ul>
					<li>Split equally, by exact amounts or by percentage.</li>
					<li>See who owes whom, netted per person.</li>
					<li>Get a reminder when you still owe someone.</li>
				</ul>
			</div>
			<div class="footer">&copy; %d Expense Share</div>
		</div>
	</body>
	</html>
	`, html.EscapeString(name), time.Now().Year())

	return m.Send(to, subject, body)
}

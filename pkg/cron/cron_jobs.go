package cron

import (
	"context"
	"fmt"
	"sync"
	"time"

	"expense_share/internal/services"
	"expense_share/pkg/utils"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// DebtorSource lists the users who still owe someone.
type DebtorSource interface {
	Debtors(ctx context.Context) ([]services.Debtor, error)
}

// StartCronJob schedules the debtor reminder job with a standard five-field
// cron expression and starts the scheduler.
func StartCronJob(schedule string, source DebtorSource, mailer utils.Mailer, currency string) (*cron.Cron, error) {
	c := cron.New()

	_, err := c.AddFunc(schedule, func() {
		if err := SendReminderEmailsToDebtors(source, mailer, currency); err != nil {
			utils.Logger.Errorf("Cron job failed to send reminder emails: %v", err)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("failed to schedule debtor reminder job %q: %w", schedule, err)
	}

	c.Start()
	utils.Logger.WithField("schedule", schedule).Info("Cron jobs started (debtor reminders)")
	return c, nil
}

// SendReminderEmailsToDebtors emails every debtor the list of people they
// owe. Emails are sent concurrently; failures are logged and counted.
func SendReminderEmailsToDebtors(source DebtorSource, mailer utils.Mailer, currency string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 45*time.Second)
	defer cancel()

	debtors, err := source.Debtors(ctx)
	if err != nil {
		return err
	}

	var wg sync.WaitGroup
	errChan := make(chan error, len(debtors))

	for _, d := range debtors {
		wg.Add(1)
		go func(d services.Debtor) {
			defer wg.Done()

			lines := make([]utils.OwedLine, 0, len(d.Owes))
			for _, o := range d.Owes {
				lines = append(lines, utils.OwedLine{Creditor: o.User.Name, Amount: o.Amount.StringFixed(2)})
			}

			err := utils.SendDebtorReminderEmail(mailer, d.User.Email, d.User.Name, currency, lines)
			services.ObserveReminder(err)
			if err != nil {
				errChan <- fmt.Errorf("failed to send reminder email to %s: %w", d.User.Email, err)
				return
			}

			utils.Logger.WithFields(logrus.Fields{
				"user_id":   d.User.ID,
				"creditors": len(lines),
			}).Info("sent debtor reminder")
		}(d)
	}

	wg.Wait()
	close(errChan)

	failed := 0
	for e := range errChan {
		utils.Logger.Error(e)
		failed++
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d reminder emails failed", failed, len(debtors))
	}

	utils.Logger.Infof("Finished sending %d debtor reminder emails", len(debtors))
	return nil
}

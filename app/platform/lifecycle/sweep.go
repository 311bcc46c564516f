package lifecycle

import (
	"time"

	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"

	"accounthub/app/config"
	"accounthub/app/database"
	"accounthub/app/mail"
	"accounthub/app/platform/account"
)

// WarningWindow is how far ahead of the verification deadline the
// warning sweep looks.
const WarningWindow = 24 * time.Hour

// Sweeper runs the two periodic account lifecycle operations. Both are
// idempotent: the selection predicates exclude already-processed rows, so
// overlapping runs cannot double-suspend a user.
type Sweeper struct {
	repo   account.Repository
	mailer mail.AccountMailer
}

func NewSweeper(db *gorm.DB, cfg *config.Config) *Sweeper {
	mailer := mail.NewAccountMail(
		mail.NewMailer(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunAPIBase),
		cfg.MailgunDomain,
	)
	return NewSweeperWith(account.NewRepository(db), mailer)
}

// NewSweeperWith wires explicit collaborators. Used by tests.
func NewSweeperWith(repo account.Repository, mailer mail.AccountMailer) *Sweeper {
	return &Sweeper{repo: repo, mailer: mailer}
}

// SuspendExpired transitions stale unverified accounts to suspended and
// sends a suspension notice. The status change persists whether or not
// the mail goes out; one user's failure never aborts the batch. Returns
// the number of accounts suspended.
func (s *Sweeper) SuspendExpired(now time.Time) (int, error) {
	users, err := s.repo.FindUnverifiedExpired(now)
	if err != nil {
		return 0, err
	}

	suspended := 0
	for i := range users {
		user := &users[i]
		user.AccountStatus = database.AccountStatusSuspended

		if err := s.mailer.SendSuspensionMail(user.Username, user.Email); err != nil {
			log.Errorf("suspension mail to %s failed: %v", user.Email, err)
		}

		if err := s.repo.Save(user); err != nil {
			log.Errorf("failed to suspend user %s: %v", user.ID, err)
			continue
		}
		suspended++
	}

	return suspended, nil
}

// WarnExpiring notifies unverified accounts whose verification deadline
// falls within the next 24 hours, carrying the still-valid verification
// token. No state mutation; safe to run redundantly. Returns the number
// of warnings sent.
func (s *Sweeper) WarnExpiring(now time.Time) (int, error) {
	users, err := s.repo.FindUnverifiedExpiring(now, now.Add(WarningWindow))
	if err != nil {
		return 0, err
	}

	warned := 0
	for i := range users {
		user := &users[i]

		if err := s.mailer.SendSuspensionWarningMail(user.Username, user.Email, user.EmailVerificationToken); err != nil {
			log.Errorf("suspension warning mail to %s failed: %v", user.Email, err)
			continue
		}
		warned++
	}

	return warned, nil
}

package emailsvc

import (
	"fmt"
	"net/mail"

	"github.com/mckinnonberry/familyqa/core"
	"github.com/mckinnonberry/familyqa/core/person"
	"github.com/mckinnonberry/familyqa/core/question"
)

const notifySubject = "New question"

// QuestionNotifier resolves an assignee to their configured recipient address
// and dispatches the fixed-subject, one-line notification. It fails closed:
// no configured address, no delivery service, no send. It never errors back
// to the caller.
type QuestionNotifier struct {
	svc        core.EmailService
	recipients map[string]string
	logger     core.Logger
}

var _ question.Notifier = (*QuestionNotifier)(nil)

// NewQuestionNotifier builds a notifier over svc. Pass a nil svc when sender
// credentials are absent; dispatch then always reports false.
func NewQuestionNotifier(svc core.EmailService, logger core.Logger) *QuestionNotifier {
	return &QuestionNotifier{
		svc:        svc,
		recipients: core.Conf.NotificationEmails,
		logger:     logger,
	}
}

func (n *QuestionNotifier) NotifyNewQuestion(assignedTo, title, description, submittedBy string) bool {
	if n.svc == nil {
		n.logger.Warn("notification dispatch disabled: no email service configured")
		return false
	}
	addr := n.recipients[assignedTo]
	if addr == "" {
		n.logger.Warn(fmt.Sprintf("no notification email configured for %q", assignedTo))
		return false
	}

	n.svc.SendMessages(&core.EmailMessage{
		To:      []mail.Address{{Name: person.DisplayName(assignedTo), Address: addr}},
		Subject: notifySubject,
		Body: fmt.Sprintf(
			"A new question has been submitted to you by %s. You may respond in the app.",
			person.DisplayName(submittedBy),
		),
	})
	return true
}

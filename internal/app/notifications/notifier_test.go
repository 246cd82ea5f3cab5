package notifications

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/campushub/campushub/internal/app/models"
)

type fakeMailer struct {
	approvalRequests []string
	outcomes         []string
	notices          []string
}

func (m *fakeMailer) SendApprovalRequest(toEmail, resourceType, title string) error {
	m.approvalRequests = append(m.approvalRequests, toEmail)
	return nil
}

func (m *fakeMailer) SendApprovalOutcome(toEmail, resourceType, title string, approved bool) error {
	m.outcomes = append(m.outcomes, toEmail)
	return nil
}

func (m *fakeMailer) SendRegistrationNotice(toEmail, eventTitle string) error {
	m.notices = append(m.notices, toEmail)
	return nil
}

type fakeDirectory struct {
	byID    map[int64]string
	byRoles []string
}

func (d *fakeDirectory) EmailByUserID(ctx context.Context, userID int64) (string, error) {
	return d.byID[userID], nil
}

func (d *fakeDirectory) EmailsByRoles(ctx context.Context, roles ...models.Role) ([]string, error) {
	return d.byRoles, nil
}

func newTestNotifier(mailer *fakeMailer, dir *fakeDirectory) *Notifier {
	return &Notifier{
		mailer:    mailer,
		directory: dir,
		logger:    zerolog.Nop(),
	}
}

func TestSendEmails_PendingEventMailsStaff(t *testing.T) {
	mailer := &fakeMailer{}
	dir := &fakeDirectory{byRoles: []string{"admin@campus.edu", "prof@campus.edu"}}
	n := newTestNotifier(mailer, dir)

	n.sendEmails(EventNewEvent, &models.Event{ID: 1, Title: "Hackathon", OrganizerID: 3})

	assert.Equal(t, []string{"admin@campus.edu", "prof@campus.edu"}, mailer.approvalRequests)
}

func TestSendEmails_AutoApprovedEventSkipsStaff(t *testing.T) {
	mailer := &fakeMailer{}
	dir := &fakeDirectory{byRoles: []string{"admin@campus.edu"}}
	n := newTestNotifier(mailer, dir)

	n.sendEmails(EventNewEvent, &models.Event{ID: 1, Title: "Hackathon", IsApproved: true})

	assert.Empty(t, mailer.approvalRequests)
}

func TestSendEmails_OutcomeMailsOwner(t *testing.T) {
	mailer := &fakeMailer{}
	dir := &fakeDirectory{byID: map[int64]string{3: "owner@campus.edu"}}
	n := newTestNotifier(mailer, dir)

	n.sendEmails(EventEventApproved, &models.Event{ID: 1, Title: "Hackathon", OrganizerID: 3})
	n.sendEmails(EventClubRejected, &models.Club{ID: 2, Name: "Chess", AdvisorID: 3})

	assert.Equal(t, []string{"owner@campus.edu", "owner@campus.edu"}, mailer.outcomes)
}

func TestSendEmails_RegistrationMailsOrganizer(t *testing.T) {
	mailer := &fakeMailer{}
	dir := &fakeDirectory{byID: map[int64]string{5: "organizer@campus.edu"}}
	n := newTestNotifier(mailer, dir)

	n.sendEmails(EventEventRegistration, &models.Event{ID: 1, Title: "Career Fair", OrganizerID: 5})

	assert.Equal(t, []string{"organizer@campus.edu"}, mailer.notices)
}

func TestSendEmails_UnknownEventIsNoop(t *testing.T) {
	mailer := &fakeMailer{}
	n := newTestNotifier(mailer, &fakeDirectory{})

	n.sendEmails(EventNewFeedback, &models.Feedback{ID: 1})

	assert.Empty(t, mailer.approvalRequests)
	assert.Empty(t, mailer.outcomes)
	assert.Empty(t, mailer.notices)
}

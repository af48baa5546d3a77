package output

import "context"

type Attachment struct {
	Filename    string
	Content     []byte
	ContentType string
}

type Message struct {
	From        string
	To          string
	Subject     string
	BodyText    string
	Attachments []Attachment
}

// Mailer is the email transport collaborator. A failed Send fails the
// whole report run; callers never swallow it.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

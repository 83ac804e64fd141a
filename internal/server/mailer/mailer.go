// Package mailer is the outbound notification sink. The lifecycle service
// only depends on the Mailer interface; the production implementation talks
// to an SMTP relay. Delivery is fire-and-confirm with no retry.
package mailer

import "context"

// Mailer sends a single plain message to one recipient.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

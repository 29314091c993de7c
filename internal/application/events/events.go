package events

// SendMail is the only event delivered through the outbox. Mail is a
// best-effort side channel: the transition that produced the event commits
// regardless of whether delivery later succeeds.
type SendMail struct {
	Recipient string
	Subject   string
	Data      interface{}
}

func (e SendMail) GetType() string {
	return "SendMail"
}

package email

import "github.com/johnquangdev/meeting-summarizer/pkg/mailer"

// SendResponse carries the relay's delivery metadata
type SendResponse struct {
	OK   bool                 `json:"ok"`
	Info *mailer.DeliveryInfo `json:"info"`
}

package db

import (
	"encoding/json"
	"log/slog"

	"github.com/Negosyo-Digital/platform-backend/internal/application/events"
)

func MapOutboxModelToSendMail(outbox Outbox) events.SendMail {
	var sendMail events.SendMail
	if err := json.Unmarshal(outbox.Payload, &sendMail); err != nil {
		slog.Error("error unmarshaling event", "err", err)
		return events.SendMail{}
	}
	return sendMail
}

func MapToRawMessage(data map[string]string) json.RawMessage {
	bytes, err := json.Marshal(data)
	if err != nil {
		slog.Error("error marshaling customizations", "err", err)
		return nil
	}
	return json.RawMessage(bytes)
}

func RawMessageToMap(raw json.RawMessage) map[string]string {
	result := make(map[string]string)
	if len(raw) == 0 {
		return result
	}
	if err := json.Unmarshal(raw, &result); err != nil {
		slog.Error("error unmarshaling customizations", "err", err)
	}
	return result
}

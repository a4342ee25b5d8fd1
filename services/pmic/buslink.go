package pmic

import (
	"encoding/json"

	"axpcode-go/bus"
	"axpcode-go/errcode"
	"axpcode-go/types"
)

// Control verbs, the last token of pmic/<name>/control/<verb>.
const (
	VerbSample   = "read_now"
	VerbSetRails = "set_rails"
	VerbSetAdc   = "set_adc"
	VerbArmTimer = "arm_timer"
)

func ValueTopic(name string) bus.Topic { return bus.T("pmic", name, "value") }

func ControlTopic(name, verb string) bus.Topic {
	return bus.T("pmic", name, "control", verb)
}

// BusSink publishes each value retained on ValueTopic(name).
func BusSink(conn *bus.Connection, name string) Sink {
	topic := ValueTopic(name)
	return SinkFunc(func(v types.PMICValue) {
		conn.Publish(conn.NewMessage(topic, v, true))
	})
}

// Attach makes the service answer control requests arriving on conn.
// It must be called before Start.
func (s *Service) Attach(conn *bus.Connection) *Service {
	s.conn = conn
	return s
}

// handleControl runs on the service goroutine, so the bus work is
// serialised with polling exactly like queued controls.
func (s *Service) handleControl(msg *bus.Message) {
	// pmic/<name>/control/<verb>
	if len(msg.Topic) != 4 {
		return
	}
	verb, _ := msg.Topic[3].(string)

	req, err := decodeControl(verb, msg.Payload)
	if err == nil {
		err = s.exec(req)
	}
	if err != nil {
		s.log.Warn("control failed", "verb", verb, "code", errcode.Of(err), "err", err)
		s.conn.Reply(msg, types.ControlReply{Error: string(errcode.MapDriverErr(err))}, false)
		return
	}
	s.conn.Reply(msg, types.ControlReply{OK: true}, false)
}

// decodeControl turns a verb and its payload into a checked request.
func decodeControl(verb string, payload any) (request, error) {
	switch verb {
	case VerbSample:
		return request{op: opSample}, nil
	case VerbSetRails:
		var v types.SetRails
		if err := decodeJSON(payload, &v); err != nil {
			return request{}, errcode.InvalidPayload
		}
		if _, _, err := railMasks(v); err != nil {
			return request{}, err
		}
		return request{op: opSetRails, arg: v}, nil
	case VerbSetAdc:
		var v types.SetAdcEnable
		if err := decodeJSON(payload, &v); err != nil {
			return request{}, errcode.InvalidPayload
		}
		if _, _, err := adcMasks(v); err != nil {
			return request{}, err
		}
		return request{op: opSetAdc, arg: v}, nil
	case VerbArmTimer:
		var v types.ArmTimer
		if err := decodeJSON(payload, &v); err != nil {
			return request{}, errcode.InvalidPayload
		}
		return request{op: opArmTimer, arg: v}, nil
	}
	return request{}, errcode.Unsupported
}

// decodeJSON accepts raw JSON, the target struct itself, or anything that
// marshals to the right shape (maps from a generic decoder).
func decodeJSON[T any](src any, dst *T) error {
	switch v := src.(type) {
	case nil:
		return nil
	case T:
		*dst = v
		return nil
	case []byte:
		return json.Unmarshal(v, dst)
	case string:
		return json.Unmarshal([]byte(v), dst)
	}
	b, err := json.Marshal(src)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, dst)
}

package out

import (
	"context"
	"encoding/json"
	"fmt"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"senscal/internal/modules/session/domain"
	sessionout "senscal/internal/modules/session/port/out"
)

// MQTTFramePublisher streams frames to an MQTT topic as JSON so external
// dashboards can watch a run live.
type MQTTFramePublisher struct {
	client mqtt.Client
	topic  string
}

func NewMQTTFramePublisher(broker, clientID, topic string) (*MQTTFramePublisher, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID)
	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("connect mqtt broker %s: %w", broker, token.Error())
	}
	return &MQTTFramePublisher{client: client, topic: topic}, nil
}

func (p *MQTTFramePublisher) Publish(ctx context.Context, frame domain.Frame) error {
	payload, err := json.Marshal(frame)
	if err != nil {
		return fmt.Errorf("marshal frame: %w", err)
	}
	token := p.client.Publish(p.topic, 0, false, payload)
	token.Wait()
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish frame: %w", err)
	}
	return nil
}

func (p *MQTTFramePublisher) Close() {
	p.client.Disconnect(250)
}

var _ sessionout.FramePublisher = (*MQTTFramePublisher)(nil)

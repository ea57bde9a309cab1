package telemetry

import (
	"fmt"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"emf-meter.klederson.com/internal/meter"
)

// MQTTPublisher streams readings to an MQTT broker so the meter can feed
// home-automation or logging setups.
type MQTTPublisher struct {
	client mqtt.Client
	topic  string
}

// NewMQTTPublisher connects to the broker and returns a ready publisher.
func NewMQTTPublisher(broker, clientID, topic string) (*MQTTPublisher, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID).
		SetAutoReconnect(true)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("mqtt connect %s: %w", broker, token.Error())
	}

	return &MQTTPublisher{client: client, topic: topic}, nil
}

// Publish sends one reading. Fire-and-forget: the frame loop must never
// block on broker round trips, and paho buffers while reconnecting.
func (p *MQTTPublisher) Publish(r meter.Reading, u meter.Unit) {
	b := NewReadingPayload(r, u).Encode()
	if b == nil {
		return
	}
	p.client.Publish(p.topic, 0, false, b)
}

// Close disconnects from the broker.
func (p *MQTTPublisher) Close() {
	p.client.Disconnect(250)
}

package ridge

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"
)

// publishTimeout bounds the wait for a broker acknowledgement.
const publishTimeout = 2 * time.Second

// RidgeMessage is the JSON payload published for each estimation run.
type RidgeMessage struct {
	RunID     string  `json:"runId"`
	Source    string  `json:"source"`
	Width     int     `json:"width"`
	Height    int     `json:"height"`
	Baseline  Ridge   `json:"baseline"`
	Refined   Ridge   `json:"refined"`
	Anchored  Ridge   `json:"anchored"`
	Anchor    *Anchor `json:"anchor,omitempty"`
	Timestamp int64   `json:"timestamp"`
}

// ConnectMQTT connects to the configured broker. Environment variables
// MQTT_BROKER, MQTT_CLIENT_ID, MQTT_USERNAME and MQTT_PASSWORD override the
// config. With no broker at all, publishing is disabled and nil is returned.
func ConnectMQTT(cfg MQTTConfig) (mqtt.Client, error) {
	broker := envOr("MQTT_BROKER", cfg.Broker)
	if broker == "" {
		log.Println("[MQTT] disabled: no broker configured")
		return nil, nil
	}

	opts := mqtt.NewClientOptions()
	opts.AddBroker(broker)

	clientID := envOr("MQTT_CLIENT_ID", cfg.ClientID)
	if clientID == "" {
		clientID = "ridgefind"
	}
	opts.SetClientID(clientID)

	if username := envOr("MQTT_USERNAME", cfg.Username); username != "" {
		opts.SetUsername(username)
		opts.SetPassword(envOr("MQTT_PASSWORD", cfg.Password))
	}

	opts.SetConnectTimeout(10 * time.Second)
	opts.SetAutoReconnect(false)
	opts.SetCleanSession(true)

	client := mqtt.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(15 * time.Second) {
		return nil, fmt.Errorf("connecting to %s: timed out", broker)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("connecting to %s: %w", broker, err)
	}

	log.Printf("[MQTT] connected to %s as %s", broker, clientID)
	return client, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Publisher publishes ridge estimates to MQTT
type Publisher struct {
	client        mqtt.Client
	publishPrefix string
	qos           byte
	retain        bool
	now           func() time.Time
}

// NewPublisher creates a publisher writing under prefix. An empty prefix
// falls back to MQTT_PUBLISH_PREFIX, then "ridgefind".
// If client is nil, publishing is disabled (for testing)
func NewPublisher(client mqtt.Client, prefix string) *Publisher {
	if prefix == "" {
		prefix = envOr("MQTT_PUBLISH_PREFIX", "ridgefind")
	}
	return &Publisher{
		client:        client,
		publishPrefix: prefix,
		qos:           0,
		retain:        true, // latest run stays visible to late subscribers
		now:           time.Now,
	}
}

// PublishResult publishes the estimates to <prefix>/ridges and
// <prefix>/ridges/<runId>.
func (p *Publisher) PublishResult(source string, res *Result) (*RidgeMessage, error) {
	if p.client == nil || !p.client.IsConnected() {
		return nil, fmt.Errorf("MQTT client not connected")
	}
	if res == nil {
		return nil, fmt.Errorf("nil result")
	}

	msg := &RidgeMessage{
		RunID:     uuid.NewString(),
		Source:    source,
		Width:     res.Width,
		Height:    res.Height,
		Baseline:  res.Baseline,
		Refined:   res.Refined,
		Anchored:  res.Anchored,
		Anchor:    res.Anchor,
		Timestamp: p.now().Unix(),
	}
	payload, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("marshaling ridge message: %w", err)
	}

	topics := []string{
		fmt.Sprintf("%s/ridges", p.publishPrefix),
		fmt.Sprintf("%s/ridges/%s", p.publishPrefix, msg.RunID),
	}
	for _, topic := range topics {
		if err := p.publish(topic, payload); err != nil {
			return nil, err
		}
	}

	log.Printf("[MQTT] published run %s for %s (%dx%d)", msg.RunID, source, res.Width, res.Height)
	return msg, nil
}

func (p *Publisher) publish(topic string, payload []byte) error {
	token := p.client.Publish(topic, p.qos, p.retain, payload)
	if !token.WaitTimeout(publishTimeout) {
		return fmt.Errorf("publishing to %s: timed out", topic)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publishing to %s: %w", topic, err)
	}
	return nil
}

// Close disconnects the underlying client, if any.
func (p *Publisher) Close() {
	if p.client != nil && p.client.IsConnected() {
		p.client.Disconnect(250)
	}
}

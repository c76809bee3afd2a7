package stream

import (
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog"
)

// BrokerConfig holds the connection settings for Dial.
type BrokerConfig struct {
	URL      string `yaml:"url"`
	ClientID string `yaml:"client_id"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// Dial connects to the broker and waits up to timeout for the connection.
func Dial(cfg BrokerConfig, timeout time.Duration, log zerolog.Logger) (mqtt.Client, error) {
	if cfg.ClientID == "" {
		cfg.ClientID = "easel"
	}
	options := mqtt.NewClientOptions().
		AddBroker(cfg.URL).
		SetClientID(cfg.ClientID).
		SetUsername(cfg.Username).
		SetPassword(cfg.Password).
		SetKeepAlive(30 * time.Second).
		SetPingTimeout(5 * time.Second).
		SetOnConnectHandler(func(mqtt.Client) {
			log.Info().Str("broker", cfg.URL).Msg("mqtt connected")
		}).
		SetConnectionLostHandler(func(_ mqtt.Client, err error) {
			log.Warn().Err(err).Str("broker", cfg.URL).Msg("mqtt connection lost")
		})
	client := mqtt.NewClient(options)

	token := client.Connect()
	if !token.WaitTimeout(timeout) {
		return nil, fmt.Errorf("stream: connect %s: timed out", cfg.URL)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("stream: connect %s: %w", cfg.URL, err)
	}
	return client, nil
}

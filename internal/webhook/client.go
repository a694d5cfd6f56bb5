package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/juju/clock"
	"github.com/juju/retry"

	"github.com/petfinder-fr/petservices-api/internal/httperr"
)

type statusError struct {
	code int
	body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("webhook %d: %s", e.code, e.body)
}

// Client pousse les demandes de prospection vers le webhook n8n sortant,
// avec le même budget de relance que les uploads vers le stockage objet.
type Client struct {
	url      string
	httpc    *http.Client
	attempts int
	delay    time.Duration
	clk      clock.Clock
}

func NewClient(url string) *Client {
	return &Client{
		url:      url,
		httpc:    &http.Client{Timeout: 30 * time.Second},
		attempts: 3,
		delay:    2 * time.Second,
		clk:      clock.WallClock,
	}
}

// Send poste le payload en JSON et retourne la réponse décodée du webhook.
// URL absente → erreur de configuration, jamais de panique.
func (c *Client) Send(ctx context.Context, payload any) (map[string]any, error) {
	if c.url == "" {
		return nil, httperr.Configuration("SCRAPING_WEBHOOK_URL non configuré sur le serveur")
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, httperr.Wrap(httperr.KindInternal, "Erreur interne du serveur", err)
	}

	var result map[string]any

	err = retry.Call(retry.CallArgs{
		Func: func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
			if err != nil {
				return err
			}
			req.Header.Set("Content-Type", "application/json")

			resp, err := c.httpc.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			if resp.StatusCode < 200 || resp.StatusCode >= 300 {
				b, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
				return &statusError{code: resp.StatusCode, body: strings.TrimSpace(string(b))}
			}

			result = nil
			if err := json.NewDecoder(resp.Body).Decode(&result); err != nil && !errors.Is(err, io.EOF) {
				return err
			}
			return nil
		},
		// Un rejet 4xx ne deviendra pas un succès en rejouant la même
		// requête: on s'arrête tout de suite.
		IsFatalError: func(err error) bool {
			var se *statusError
			return errors.As(err, &se) && se.code >= 400 && se.code < 500
		},
		NotifyFunc: func(lastError error, attempt int) {
			log.Printf("webhook attempt %d/%d failed: %v", attempt, c.attempts, lastError)
		},
		Attempts: c.attempts,
		Delay:    c.delay,
		BackoffFunc: func(_ time.Duration, attempt int) time.Duration {
			return c.delay * time.Duration(attempt)
		},
		Clock: c.clk,
	})
	if err != nil {
		if retry.IsAttemptsExceeded(err) {
			err = retry.LastError(err)
		}
		return nil, httperr.Wrap(httperr.KindStorage, "Erreur lors de l'envoi de la demande de prospection", err)
	}

	return result, nil
}

package services

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pixelmage/pixelmage-cards-api/config"
)

// PaymentVerification is the payment processor's view of one payment
type PaymentVerification struct {
	Reference string  `json:"reference"`
	Status    string  `json:"status"` // PENDING, PAID, FAILED, REFUNDED
	Amount    float64 `json:"amount"`
	Currency  string  `json:"currency"`
}

// PaymentInterface defines the interface to the external payment
// processor. The processor is the source of truth for an order's
// payment status; this API only reads it.
type PaymentInterface interface {
	VerifyPayment(reference string) (*PaymentVerification, error)
}

// PaymentService calls the payment processor's HTTP API
type PaymentService struct {
	baseURL    string
	httpClient *http.Client
}

var paymentServiceInstance PaymentInterface

// InitPaymentService initializes the payment service against the
// configured processor URL
func InitPaymentService(cfg *config.Config) PaymentInterface {
	paymentServiceInstance = &PaymentService{
		baseURL: cfg.PaymentAPIURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
	return paymentServiceInstance
}

// GetPaymentService returns the initialized payment service instance
func GetPaymentService() PaymentInterface {
	return paymentServiceInstance
}

// SetPaymentService sets the payment service instance (primarily for testing)
func SetPaymentService(service PaymentInterface) {
	paymentServiceInstance = service
}

// VerifyPayment fetches the current status of a payment from the processor
func (s *PaymentService) VerifyPayment(reference string) (*PaymentVerification, error) {
	url := fmt.Sprintf("%s/v1/payments/%s", s.baseURL, reference)

	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call payment processor: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("payment processor returned status %d: %s", resp.StatusCode, string(body))
	}

	var verification PaymentVerification
	if err := json.NewDecoder(resp.Body).Decode(&verification); err != nil {
		return nil, fmt.Errorf("failed to decode payment response: %w", err)
	}

	return &verification, nil
}

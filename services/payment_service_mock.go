package services

import (
	"fmt"
	"sync"
)

// MockPaymentService is a mock implementation of the payment processor
// client for testing
type MockPaymentService struct {
	payments map[string]*PaymentVerification
	mu       sync.RWMutex
}

// NewMockPaymentService creates a new mock payment service
func NewMockPaymentService() *MockPaymentService {
	return &MockPaymentService{
		payments: make(map[string]*PaymentVerification),
	}
}

// SetAsMockForTesting sets this mock as the global payment service instance
func (m *MockPaymentService) SetAsMockForTesting() {
	SetPaymentService(m)
}

// AddPayment registers a payment the mock will report
func (m *MockPaymentService) AddPayment(reference, status string, amount float64) {
	m.mu.Lock()
	m.payments[reference] = &PaymentVerification{
		Reference: reference,
		Status:    status,
		Amount:    amount,
		Currency:  "USD",
	}
	m.mu.Unlock()
}

// VerifyPayment returns the registered payment or an error for unknown references
func (m *MockPaymentService) VerifyPayment(reference string) (*PaymentVerification, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	verification, exists := m.payments[reference]
	if !exists {
		return nil, fmt.Errorf("payment not found: %s", reference)
	}
	return verification, nil
}

// Clear removes all registered payments
func (m *MockPaymentService) Clear() {
	m.mu.Lock()
	m.payments = make(map[string]*PaymentVerification)
	m.mu.Unlock()
}

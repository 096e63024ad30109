package withdrawal_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/earned-wage-access/internal"
	"github.com/frahmantamala/earned-wage-access/internal/core/datamodel/transaction"
	"github.com/frahmantamala/earned-wage-access/internal/wage"
	"github.com/frahmantamala/earned-wage-access/internal/withdrawal"
)

type mockWithdrawalService struct {
	err        error
	employeeID string
	amount     int64
}

func (m *mockWithdrawalService) Withdraw(ctx context.Context, employeeID string, amount int64) (withdrawal.Result, error) {
	m.employeeID, m.amount = employeeID, amount
	if m.err != nil {
		return withdrawal.Result{}, m.err
	}
	return withdrawal.Result{
		Transaction: transaction.Record{ID: "TXN-1", Amount: amount, Fee: 10_000, NetAmount: amount, Status: transaction.StatusSuccess},
		NewLimit:    1_000_000,
	}, nil
}

func (m *mockWithdrawalService) Quote(employeeID string, amount int64) (wage.Quote, error) {
	m.employeeID, m.amount = employeeID, amount
	if m.err != nil {
		return wage.Quote{}, m.err
	}
	return wage.Quote{Amount: amount, Fee: 10_000, TotalDeduction: amount + 10_000, NetAmount: amount, WithinLimit: true}, nil
}

func authenticated(req *http.Request) *http.Request {
	identity := &internal.Identity{SessionID: "s-1", EmployeeID: "NV001", Name: "Nguyễn Văn A"}
	return req.WithContext(internal.ContextWithIdentity(req.Context(), identity))
}

var _ = Describe("Withdrawal handler", func() {
	var (
		svc      *mockWithdrawalService
		handler  *withdrawal.Handler
		recorder *httptest.ResponseRecorder
	)

	BeforeEach(func() {
		svc = &mockWithdrawalService{}
		handler = withdrawal.NewHandler(svc, slog.New(slog.NewTextHandler(io.Discard, nil)))
		recorder = httptest.NewRecorder()
	})

	body := func() map[string]interface{} {
		var out map[string]interface{}
		Expect(json.Unmarshal(recorder.Body.Bytes(), &out)).To(Succeed())
		return out
	}

	Context("Withdraw", func() {
		It("withdraws for the authenticated employee", func() {
			req := authenticated(httptest.NewRequest(http.MethodPost, "/api/v1/me/withdrawals", bytes.NewBufferString(`{"amount": 500000}`)))

			handler.Withdraw(recorder, req)

			Expect(recorder.Code).To(Equal(http.StatusCreated))
			Expect(svc.employeeID).To(Equal("NV001"))
			Expect(svc.amount).To(Equal(int64(500_000)))
			data := body()["data"].(map[string]interface{})
			Expect(data["new_limit"]).To(BeNumerically("==", 1_000_000))
			Expect(data["transaction"].(map[string]interface{})["status"]).To(Equal("SUCCESS"))
		})

		It("renders LimitExceeded with total and limit", func() {
			svc.err = internal.NewLimitExceededError(5_020_000, 4_818_000)
			req := authenticated(httptest.NewRequest(http.MethodPost, "/api/v1/me/withdrawals", bytes.NewBufferString(`{"amount": 5000000}`)))

			handler.Withdraw(recorder, req)

			Expect(recorder.Code).To(Equal(http.StatusUnprocessableEntity))
			errBody := body()["error"].(map[string]interface{})
			Expect(errBody["code"]).To(Equal("LIMIT_EXCEEDED"))
			details := errBody["details"].(map[string]interface{})
			Expect(details["total"]).To(BeNumerically("==", 5_020_000))
			Expect(details["limit"]).To(BeNumerically("==", 4_818_000))
		})

		It("renders BankNotLinked as a conflict", func() {
			svc.err = internal.ErrBankNotLinked
			req := authenticated(httptest.NewRequest(http.MethodPost, "/api/v1/me/withdrawals", bytes.NewBufferString(`{"amount": 100000}`)))

			handler.Withdraw(recorder, req)

			Expect(recorder.Code).To(Equal(http.StatusConflict))
		})

		It("requires authentication", func() {
			handler.Withdraw(recorder, httptest.NewRequest(http.MethodPost, "/api/v1/me/withdrawals", bytes.NewBufferString(`{"amount": 1}`)))
			Expect(recorder.Code).To(Equal(http.StatusUnauthorized))
		})

		It("rejects invalid JSON", func() {
			req := authenticated(httptest.NewRequest(http.MethodPost, "/api/v1/me/withdrawals", bytes.NewBufferString(`{"amount": "lots"}`)))

			handler.Withdraw(recorder, req)

			Expect(recorder.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Context("Quote", func() {
		It("returns the fee breakdown", func() {
			req := authenticated(httptest.NewRequest(http.MethodGet, "/api/v1/me/withdrawals/quote?amount=250000", nil))

			handler.Quote(recorder, req)

			Expect(recorder.Code).To(Equal(http.StatusOK))
			data := body()["data"].(map[string]interface{})
			Expect(data["total_deduction"]).To(BeNumerically("==", 260_000))
		})

		It("rejects a non-numeric amount", func() {
			req := authenticated(httptest.NewRequest(http.MethodGet, "/api/v1/me/withdrawals/quote?amount=abc", nil))

			handler.Quote(recorder, req)

			Expect(recorder.Code).To(Equal(http.StatusBadRequest))
			Expect(body()["error"].(map[string]interface{})["code"]).To(Equal("INVALID_AMOUNT"))
		})
	})
})

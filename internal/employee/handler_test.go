package employee_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/earned-wage-access/internal"
	datamodel "github.com/frahmantamala/earned-wage-access/internal/core/datamodel/employee"
	"github.com/frahmantamala/earned-wage-access/internal/core/datamodel/transaction"
	"github.com/frahmantamala/earned-wage-access/internal/employee"
)

type mockProfileService struct {
	record  datamodel.Record
	err     error
	history []transaction.Record
}

func (m *mockProfileService) Profile(employeeID string) (employee.Profile, error) {
	if m.err != nil {
		return employee.Profile{}, m.err
	}
	return employee.NewProfile(m.record), nil
}

func (m *mockProfileService) GetAvailableLimit(employeeID string) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	return employee.NewProfile(m.record).AvailableLimit, nil
}

func (m *mockProfileService) GetTransactionHistory(employeeID string) []transaction.Record {
	return m.history
}

func authenticated(req *http.Request) *http.Request {
	identity := &internal.Identity{SessionID: "s-1", EmployeeID: "NV001", Name: "Nguyễn Văn A"}
	return req.WithContext(internal.ContextWithIdentity(req.Context(), identity))
}

var _ = Describe("NewProfile", func() {
	It("derives the earned amount and limit from the record", func() {
		profile := employee.NewProfile(datamodel.Record{
			ID:             "NV001",
			Name:           "Nguyễn Văn A",
			GrossSalary:    20_000_000,
			WorkingDays:    15,
			AdvancedAmount: 2_000_000,
			LinkedBank:     &datamodel.BankLink{BankCode: "VCB", AccountNo: "1234567890", AccountName: "NGUYEN VAN A"},
		})

		Expect(profile.EarnedAmount).To(Equal(int64(6_818_181)))
		Expect(profile.AvailableLimit).To(Equal(int64(4_818_000)))
		Expect(profile.LinkedBank).NotTo(BeNil())
		Expect(profile.LinkedBank.BankName).To(Equal("Vietcombank"))
	})

	It("leaves the linked bank empty when none is attached", func() {
		profile := employee.NewProfile(datamodel.Record{ID: "NV002", GrossSalary: 15_000_000, WorkingDays: 10})
		Expect(profile.LinkedBank).To(BeNil())
	})
})

var _ = Describe("Employee handler", func() {
	var (
		svc      *mockProfileService
		handler  *employee.Handler
		recorder *httptest.ResponseRecorder
	)

	BeforeEach(func() {
		svc = &mockProfileService{
			record: datamodel.Record{ID: "NV001", Name: "Nguyễn Văn A", GrossSalary: 20_000_000, WorkingDays: 15},
		}
		handler = employee.NewHandler(svc, slog.New(slog.NewTextHandler(io.Discard, nil)))
		recorder = httptest.NewRecorder()
	})

	Context("Me", func() {
		It("returns the profile", func() {
			req := authenticated(httptest.NewRequest(http.MethodGet, "/api/v1/me", nil))

			handler.Me(recorder, req)

			Expect(recorder.Code).To(Equal(http.StatusOK))
			var body struct {
				Data employee.Profile `json:"data"`
			}
			Expect(json.Unmarshal(recorder.Body.Bytes(), &body)).To(Succeed())
			Expect(body.Data.ID).To(Equal("NV001"))
			Expect(body.Data.AvailableLimit).To(Equal(int64(6_818_000)))
		})

		It("requires an identity", func() {
			handler.Me(recorder, httptest.NewRequest(http.MethodGet, "/api/v1/me", nil))
			Expect(recorder.Code).To(Equal(http.StatusUnauthorized))
		})

		It("maps a missing employee to 404", func() {
			svc.err = internal.ErrEmployeeNotFound

			handler.Me(recorder, authenticated(httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)))

			Expect(recorder.Code).To(Equal(http.StatusNotFound))
			Expect(recorder.Body.String()).To(ContainSubstring("EMPLOYEE_NOT_FOUND"))
		})
	})

	Context("Limit", func() {
		It("returns the available limit", func() {
			handler.Limit(recorder, authenticated(httptest.NewRequest(http.MethodGet, "/api/v1/me/limit", nil)))

			Expect(recorder.Code).To(Equal(http.StatusOK))
			Expect(recorder.Body.String()).To(ContainSubstring(`"available_limit":6818000`))
		})
	})

	Context("Transactions", func() {
		It("returns an empty list rather than null", func() {
			handler.Transactions(recorder, authenticated(httptest.NewRequest(http.MethodGet, "/api/v1/me/transactions", nil)))

			Expect(recorder.Code).To(Equal(http.StatusOK))
			Expect(recorder.Body.String()).To(ContainSubstring(`"transactions":[]`))
		})

		It("returns the history in the given order", func() {
			svc.history = []transaction.Record{{ID: "TXN-2"}, {ID: "TXN-1"}}

			handler.Transactions(recorder, authenticated(httptest.NewRequest(http.MethodGet, "/api/v1/me/transactions", nil)))

			var body struct {
				Data employee.HistoryResponse `json:"data"`
			}
			Expect(json.Unmarshal(recorder.Body.Bytes(), &body)).To(Succeed())
			Expect(body.Data.Transactions).To(HaveLen(2))
			Expect(body.Data.Transactions[0].ID).To(Equal("TXN-2"))
		})
	})
})

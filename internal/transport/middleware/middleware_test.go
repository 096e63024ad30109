package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/earned-wage-access/internal/transport"
)

var _ = Describe("sensitive field filtering", func() {
	It("masks credentials and account details in JSON bodies", func() {
		body := filterSensitiveBody([]byte(`{"challenge_id":"c-1","code":"123456","account_no":"0987654321","bank_code":"VCB"}`), true)

		Expect(body).To(ContainSubstring(`"bank_code":"VCB"`))
		Expect(body).NotTo(ContainSubstring("123456"))
		Expect(body).NotTo(ContainSubstring("0987654321"))
		Expect(body).NotTo(ContainSubstring("c-1"))
	})

	It("keeps the error code of an error envelope", func() {
		body := filterSensitiveBody([]byte(`{"error":{"code":"LIMIT_EXCEEDED"}}`), false)
		Expect(body).To(ContainSubstring("LIMIT_EXCEEDED"))

		Expect(isSensitive("error")).To(BeFalse())
		Expect(isSensitive("employee_code")).To(BeFalse())
	})

	It("masks the authorization header and sensitive query parameters", func() {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/bank-accounts/lookup?bank_code=VCB&account_no=123456789", nil)
		req.Header.Set("Authorization", "Bearer abc")

		Expect(filterSensitiveHeaders(req.Header)["Authorization"]).To(Equal("[FILTERED]"))
		Expect(filterSensitiveQuery(req)).NotTo(ContainSubstring("123456789"))
		Expect(filterSensitiveQuery(req)).To(ContainSubstring("bank_code=VCB"))
	})
})

var _ = Describe("Recovery", func() {
	It("renders a panic as an internal error envelope", func() {
		handler := Recovery(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			panic("boom")
		}))

		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

		Expect(recorder.Code).To(Equal(http.StatusInternalServerError))
		Expect(recorder.Body.String()).To(ContainSubstring("INTERNAL_ERROR"))
		Expect(recorder.Body.String()).NotTo(ContainSubstring("boom"))
	})
})

var _ = Describe("CORS", func() {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	It("allows configured origins only", func() {
		handler := CORS("https://app.example.com")(ok)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "https://app.example.com")
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, req)
		Expect(recorder.Header().Get("Access-Control-Allow-Origin")).To(Equal("https://app.example.com"))

		req = httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "https://evil.example.com")
		recorder = httptest.NewRecorder()
		handler.ServeHTTP(recorder, req)
		Expect(recorder.Header().Get("Access-Control-Allow-Origin")).To(BeEmpty())
	})

	It("answers preflight requests", func() {
		req := httptest.NewRequest(http.MethodOptions, "/", nil)
		req.Header.Set("Origin", "https://app.example.com")
		recorder := httptest.NewRecorder()

		CORS("*")(ok).ServeHTTP(recorder, req)

		Expect(recorder.Code).To(Equal(http.StatusNoContent))
		Expect(recorder.Header().Get("Access-Control-Allow-Origin")).To(Equal("*"))
	})
})

var _ = Describe("RequestValidator", func() {
	const apiDocument = `
openapi: 3.0.3
info:
  title: test
  version: "1"
paths:
  /items:
    post:
      requestBody:
        required: true
        content:
          application/json:
            schema:
              type: object
              required: [amount]
              properties:
                amount:
                  type: integer
      responses:
        "200":
          description: ok
`

	var handler http.Handler

	BeforeEach(func() {
		doc, err := LoadOpenAPI([]byte(apiDocument))
		Expect(err).NotTo(HaveOccurred())
		validate, err := RequestValidator(doc, transport.NewBaseHandler(slog.New(slog.NewTextHandler(io.Discard, nil))))
		Expect(err).NotTo(HaveOccurred())
		handler = validate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			body, _ := io.ReadAll(r.Body)
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write(body)
		}))
	})

	post := func(path, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, path, stringsReader(body))
		req.Header.Set("Content-Type", "application/json")
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, req)
		return recorder
	}

	It("passes valid requests with the body intact", func() {
		recorder := post("/items", `{"amount":5}`)
		Expect(recorder.Code).To(Equal(http.StatusOK))
		Expect(recorder.Body.String()).To(Equal(`{"amount":5}`))
	})

	It("rejects bodies that do not match the schema", func() {
		recorder := post("/items", `{"amount":"five"}`)
		Expect(recorder.Code).To(Equal(http.StatusBadRequest))
		Expect(recorder.Body.String()).To(ContainSubstring("VALIDATION_FAILED"))
	})

	It("lets undocumented routes through", func() {
		recorder := post("/other", `anything`)
		Expect(recorder.Code).To(Equal(http.StatusOK))
	})

	It("refuses an invalid document", func() {
		_, err := LoadOpenAPI([]byte("openapi: 3.0.3\npaths: 12\n"))
		Expect(err).To(HaveOccurred())
	})
})

func stringsReader(s string) io.Reader {
	return strings.NewReader(s)
}

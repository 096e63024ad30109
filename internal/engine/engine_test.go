package engine_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"

	"github.com/frahmantamala/earned-wage-access/internal"
	"github.com/frahmantamala/earned-wage-access/internal/bankdirectory"
	"github.com/frahmantamala/earned-wage-access/internal/core/events"
	"github.com/frahmantamala/earned-wage-access/internal/engine"
)

func testConfig() *internal.Config {
	cfg := &internal.Config{
		Security: internal.SecurityConfig{
			JWTSecret: "engine-test-secret-with-at-least-32-chars",
		},
	}
	cfg.ApplyDefaults()
	return cfg
}

var _ = Describe("Engine", func() {
	var (
		eng *engine.Engine
		ctx context.Context
		now time.Time
	)

	BeforeEach(func() {
		lg := slog.New(slog.NewTextHandler(io.Discard, nil))
		directory := bankdirectory.NewStatic(bankdirectory.FixtureAccounts(), 0, lg)
		now = time.Date(2026, time.February, 1, 9, 0, 0, 0, time.UTC)

		var err error
		eng, err = engine.New(testConfig(), directory, lg,
			engine.WithBcryptCost(bcrypt.MinCost),
			engine.WithClock(func() time.Time { return now }))
		Expect(err).NotTo(HaveOccurred())
		ctx = context.Background()
	})

	AfterEach(func() {
		eng.Shutdown()
	})

	Context("with the fixture employees", func() {
		It("seeds NV001 and NV002", func() {
			employees := eng.Employees()
			Expect(employees).To(HaveLen(2))
			Expect(employees[0].ID).To(Equal("NV001"))
			Expect(employees[1].LinkedBank).NotTo(BeNil())
		})

		It("reports NV001's limit after the prior advance", func() {
			limit, err := eng.GetAvailableLimit("NV001")
			Expect(err).NotTo(HaveOccurred())
			Expect(limit).To(Equal(int64(4_818_000)))
		})

		It("returns the seeded history newest first", func() {
			history := eng.GetTransactionHistory("NV001")
			Expect(history).To(HaveLen(2))
			Expect(history[0].ID).To(Equal("TXN001"))
			Expect(history[1].ID).To(Equal("TXN002"))
			Expect(eng.GetTransactionHistory("NV002")).To(BeEmpty())
		})

		It("reports unknown employees", func() {
			_, err := eng.GetAvailableLimit("NV404")
			Expect(errors.Is(err, internal.ErrEmployeeNotFound)).To(BeTrue())
		})
	})

	Context("login", func() {
		It("identifies, verifies and resolves a session", func() {
			challenge, err := eng.IdentifyEmployee("nv001")
			Expect(err).NotTo(HaveOccurred())

			sess, err := eng.VerifyOneTimeCode(ctx, challenge.ID, "123456")
			Expect(err).NotTo(HaveOccurred())
			Expect(sess.Employee.Name).To(Equal("Nguyễn Văn A"))

			identity, err := eng.Resolve(sess.Token)
			Expect(err).NotTo(HaveOccurred())
			Expect(identity.EmployeeID).To(Equal("NV001"))

			eng.Logout(sess.ID)
			_, err = eng.Resolve(sess.Token)
			Expect(errors.Is(err, internal.ErrInvalidToken)).To(BeTrue())
		})

		It("rejects a wrong one-time code", func() {
			challenge, err := eng.IdentifyEmployee("NV002")
			Expect(err).NotTo(HaveOccurred())

			_, err = eng.VerifyOneTimeCode(ctx, challenge.ID, "000000")
			Expect(errors.Is(err, internal.ErrInvalidCode)).To(BeTrue())
		})
	})

	Context("withdrawing", func() {
		It("requires a linked bank first", func() {
			_, err := eng.Withdraw(ctx, "NV001", 500_000)
			Expect(errors.Is(err, internal.ErrBankNotLinked)).To(BeTrue())
		})

		It("links the account and withdraws", func() {
			// Given the holder name resolved through the directory
			name, err := eng.LookupBankAccountHolder(ctx, "TCB", "1111222233")
			Expect(err).NotTo(HaveOccurred())
			Expect(name).To(Equal("NGUYEN VAN A"))

			link, err := eng.LinkBankAccount(ctx, "NV001", "TCB", "1111222233", name)
			Expect(err).NotTo(HaveOccurred())
			Expect(link.BankCode).To(Equal("TCB"))

			// When the employee withdraws 1,000,000
			result, err := eng.Withdraw(ctx, "NV001", 1_000_000)

			// Then the fee is 20,000 and the limit drops by the total
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Transaction.Fee).To(Equal(int64(20_000)))
			Expect(result.Transaction.NetAmount).To(Equal(int64(1_000_000)))
			Expect(result.Transaction.BankName).To(Equal("Techcombank"))
			Expect(result.NewLimit).To(Equal(int64(3_798_000)))

			history := eng.GetTransactionHistory("NV001")
			Expect(history).To(HaveLen(3))
			Expect(history[0].ID).To(Equal(result.Transaction.ID))

			profile, err := eng.Profile("NV001")
			Expect(err).NotTo(HaveOccurred())
			Expect(profile.AdvancedAmount).To(Equal(int64(3_020_000)))
			Expect(profile.LinkedBank.BankName).To(Equal("Techcombank"))
		})

		It("rejects a holder name that belongs to someone else", func() {
			name, err := eng.LookupBankAccountHolder(ctx, "MB", "5555666677")
			Expect(err).NotTo(HaveOccurred())

			_, err = eng.LinkBankAccount(ctx, "NV001", "MB", "5555666677", name)
			Expect(errors.Is(err, internal.ErrNameMismatch)).To(BeTrue())
		})

		It("reports accounts the directory does not know", func() {
			_, err := eng.LookupBankAccountHolder(ctx, "VCB", "0000000000")
			Expect(errors.Is(err, internal.ErrAccountNotFound)).To(BeTrue())
		})

		It("leaves the ledger unchanged when over the limit", func() {
			_, err := eng.Withdraw(ctx, "NV002", 6_810_000)
			Expect(errors.Is(err, internal.ErrLimitExceeded)).To(BeTrue())

			limit, err := eng.GetAvailableLimit("NV002")
			Expect(err).NotTo(HaveOccurred())
			Expect(limit).To(Equal(int64(6_818_000)))
			Expect(eng.GetTransactionHistory("NV002")).To(BeEmpty())
		})

		It("notifies subscribers of completed withdrawals", func() {
			received := make(chan events.Event, 1)
			eng.Events().Subscribe(events.EventTypeWithdrawalCompleted, func(_ context.Context, event events.Event) error {
				received <- event
				return nil
			})

			result, err := eng.Withdraw(ctx, "NV002", 500_000)
			Expect(err).NotTo(HaveOccurred())

			var event events.Event
			Eventually(received).Should(Receive(&event))
			completed, ok := event.(*events.WithdrawalCompletedEvent)
			Expect(ok).To(BeTrue())
			Expect(completed.TransactionID).To(Equal(result.Transaction.ID))
			Expect(completed.NewLimit).To(Equal(result.NewLimit))
		})

		It("quotes without mutating", func() {
			quote, err := eng.Quote("NV002", 999_999)
			Expect(err).NotTo(HaveOccurred())
			Expect(quote.Fee).To(Equal(int64(10_000)))
			Expect(quote.WithinLimit).To(BeTrue())

			limit, _ := eng.GetAvailableLimit("NV002")
			Expect(limit).To(Equal(int64(6_818_000)))
		})
	})

	It("lists the bank catalogue", func() {
		Expect(eng.Banks()).To(HaveLen(5))
	})
})

var _ = Describe("Engine seeded from config", func() {
	It("uses the configured employees instead of the fixtures", func() {
		cfg := testConfig()
		cfg.Seed.Employees = []internal.EmployeeSeed{
			{
				ID:          "EMP-1",
				Name:        "Lê Văn Đức",
				GrossSalary: 22_000_000,
				WorkingDays: 22,
				LinkedBank:  &internal.BankLinkSeed{BankCode: "ACB", AccountNo: "12345678", AccountName: "LE VAN DUC"},
			},
		}
		lg := slog.New(slog.NewTextHandler(io.Discard, nil))

		eng, err := engine.New(cfg, bankdirectory.NewStatic(nil, 0, lg), lg, engine.WithBcryptCost(bcrypt.MinCost))
		Expect(err).NotTo(HaveOccurred())
		defer eng.Shutdown()

		Expect(eng.Employees()).To(HaveLen(1))
		limit, err := eng.GetAvailableLimit("EMP-1")
		Expect(err).NotTo(HaveOccurred())
		Expect(limit).To(Equal(int64(11_000_000)))
		Expect(eng.GetTransactionHistory("NV001")).To(BeEmpty())
	})

	It("stores configured ids in upper case so they can log in", func() {
		cfg := testConfig()
		cfg.Seed.Employees = []internal.EmployeeSeed{
			{ID: " nv010 ", Name: "Phạm Thị D", GrossSalary: 11_000_000, WorkingDays: 11},
		}
		lg := slog.New(slog.NewTextHandler(io.Discard, nil))

		eng, err := engine.New(cfg, bankdirectory.NewStatic(nil, 0, lg), lg, engine.WithBcryptCost(bcrypt.MinCost))
		Expect(err).NotTo(HaveOccurred())
		defer eng.Shutdown()

		challenge, err := eng.IdentifyEmployee("nv010")
		Expect(err).NotTo(HaveOccurred())
		Expect(challenge.Employee.ID).To(Equal("NV010"))

		sess, err := eng.VerifyOneTimeCode(context.Background(), challenge.ID, internal.DefaultOneTimeCode)
		Expect(err).NotTo(HaveOccurred())
		Expect(sess.Employee.ID).To(Equal("NV010"))
	})
})

package bankdirectory_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/earned-wage-access/internal/bankdirectory"
	"github.com/frahmantamala/earned-wage-access/internal/core/datamodel/bankaccount"
)

var quietLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

var _ = Describe("Static directory", func() {
	It("resolves fixture accounts", func() {
		dir := bankdirectory.NewStatic(bankdirectory.FixtureAccounts(), 0, quietLogger)

		name, err := dir.LookupHolder(context.Background(), "VCB", "0987654321")
		Expect(err).NotTo(HaveOccurred())
		Expect(name).To(Equal("NGUYEN VAN A"))
	})

	It("normalizes the bank code", func() {
		dir := bankdirectory.NewStatic(bankdirectory.FixtureAccounts(), 0, quietLogger)

		name, err := dir.LookupHolder(context.Background(), " mb ", "5555666677")
		Expect(err).NotTo(HaveOccurred())
		Expect(name).To(Equal("LE VAN C"))
	})

	It("reports unknown accounts as not found", func() {
		dir := bankdirectory.NewStatic(bankdirectory.FixtureAccounts(), 0, quietLogger)

		_, err := dir.LookupHolder(context.Background(), "ACB", "0000000000")
		Expect(errors.Is(err, bankdirectory.ErrAccountNotFound)).To(BeTrue())
	})

	It("serves accounts added later", func() {
		dir := bankdirectory.NewStatic(nil, 0, quietLogger)
		dir.Add(bankaccount.DirectoryAccount{BankCode: "VPB", AccountNo: "123123123", AccountName: "PHAM VAN D"})

		name, err := dir.LookupHolder(context.Background(), "VPB", "123123123")
		Expect(err).NotTo(HaveOccurred())
		Expect(name).To(Equal("PHAM VAN D"))
	})

	It("gives up when the context ends during the simulated delay", func() {
		dir := bankdirectory.NewStatic(bankdirectory.FixtureAccounts(), time.Second, quietLogger)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()

		start := time.Now()
		_, err := dir.LookupHolder(ctx, "VCB", "0987654321")

		Expect(errors.Is(err, context.DeadlineExceeded)).To(BeTrue())
		Expect(errors.Is(err, bankdirectory.ErrAccountNotFound)).To(BeFalse())
		Expect(time.Since(start)).To(BeNumerically("<", 500*time.Millisecond))
	})
})

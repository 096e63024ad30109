package banklink_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/earned-wage-access/internal/banklink"
)

var _ = Describe("Name normalization", func() {
	DescribeTable("NormalizeName",
		func(in, out string) {
			Expect(banklink.NormalizeName(in)).To(Equal(out))
		},
		Entry("vietnamese diacritics", "Nguyễn Văn A", "NGUYEN VAN A"),
		Entry("stacked marks", "Trần Thị B", "TRAN THI B"),
		Entry("d with stroke", "Đặng Đức", "DANG DUC"),
		Entry("lower-case d with stroke", "đỗ", "DO"),
		Entry("extra whitespace", "  le   van  c ", "LE VAN C"),
		Entry("already normalized", "TRAN THI B", "TRAN THI B"),
	)

	DescribeTable("NameMatches",
		func(employeeName, holder string, expected bool) {
			Expect(banklink.NameMatches(employeeName, holder)).To(Equal(expected))
		},
		Entry("same name without accents", "Nguyễn Văn A", "NGUYEN VAN A", true),
		Entry("lower-case holder", "Trần Thị B", "tran thi b", true),
		Entry("only the last word needs to match", "Nguyễn Văn A", "PHAM A", true),
		Entry("different person", "Nguyễn Văn A", "LE VAN C", false),
		Entry("last word only as a substring", "Trần Thị B", "BUI VAN C", false),
		Entry("empty employee name", "", "NGUYEN VAN A", false),
		Entry("empty holder", "Nguyễn Văn A", "", false),
	)
})

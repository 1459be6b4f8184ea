package extraction

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Normalize", func() {
	var (
		raw   string
		lines []string
	)

	JustBeforeEach(func() {
		lines = Normalize(raw)
	})

	When("the text contains blank and padded lines", func() {
		BeforeEach(func() {
			raw = "  Fattura n. 105  \n\n\t\nCompensi  250,00\n   \nTotale Onorari 312,50\n"
		})

		It("drops blank lines and trims the rest", func() {
			Expect(lines).To(Equal([]string{
				"Fattura n. 105",
				"Compensi  250,00",
				"Totale Onorari 312,50",
			}))
		})

		It("preserves the original line order", func() {
			Expect(lines[0]).To(ContainSubstring("Fattura"))
			Expect(lines[len(lines)-1]).To(ContainSubstring("Totale"))
		})
	})

	When("the text uses Windows line endings", func() {
		BeforeEach(func() {
			raw = "Compensi 250,00\r\nTotale Onorari 312,50\r\n"
		})

		It("strips the carriage returns", func() {
			Expect(lines).To(Equal([]string{
				"Compensi 250,00",
				"Totale Onorari 312,50",
			}))
		})
	})

	When("the text is empty", func() {
		BeforeEach(func() {
			raw = ""
		})

		It("returns no lines", func() {
			Expect(lines).To(BeEmpty())
		})
	})

	When("the text is only whitespace", func() {
		BeforeEach(func() {
			raw = " \n\t\n  \n"
		})

		It("returns no lines", func() {
			Expect(lines).To(BeEmpty())
		})
	})
})

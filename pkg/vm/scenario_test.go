package vm_test

import (
	"bytes"
	"encoding/binary"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/google/go-cmp/cmp"

	"github.com/DiegoCivi/virtual-machine-LC3/pkg/vm"
)

// image builds a big-endian LC-3 image byte stream: origin followed by
// the given data words, per spec.md §4.6.
func image(origin uint16, words ...uint16) []byte {
	buf := make([]byte, 0, 2+2*len(words))
	var tmp [2]byte
	binary.BigEndian.PutUint16(tmp[:], origin)
	buf = append(buf, tmp[:]...)
	for _, w := range words {
		binary.BigEndian.PutUint16(tmp[:], w)
		buf = append(buf, tmp[:]...)
	}
	return buf
}

func diffSnapshot(got, want vm.Snapshot) string {
	return cmp.Diff(want, got)
}

var _ = Describe("end-to-end scenarios (spec.md §8)", func() {
	var out *bytes.Buffer
	var m *vm.VM

	BeforeEach(func() {
		out = &bytes.Buffer{}
		m = vm.New(bytes.NewReader(nil), out)
	})

	It("S1: ADD immediate", func() {
		Expect(vm.LoadImage(bytes.NewReader(image(0x3000, 0x1063)), m.Mem)).To(Succeed())
		m.Regs.Set(vm.R1, 0x0001)
		Expect(m.Step()).To(Succeed())

		got := m.Snapshot()
		want := got
		want.GPR[0] = 0x0004
		want.Cond = uint16(vm.CondP)
		want.PC = 0x3001
		Expect(diffSnapshot(got, want)).To(BeEmpty())
	})

	It("S2: AND register", func() {
		Expect(vm.LoadImage(bytes.NewReader(image(0x3000, 0x5042)), m.Mem)).To(Succeed())
		m.Regs.Set(vm.R1, 0xFFFF)
		m.Regs.Set(vm.R2, 0x00FF)
		Expect(m.Step()).To(Succeed())
		Expect(m.Regs.Get(vm.R0)).To(Equal(uint16(0x00FF)))
		Expect(m.Regs.Get(vm.COND)).To(Equal(uint16(vm.CondP)))
	})

	It("S4: LDI via indirection", func() {
		Expect(vm.LoadImage(bytes.NewReader(image(0x3000, 0xA20E)), m.Mem)).To(Succeed())
		Expect(m.Mem.Write(0x300F, 0x3100)).To(Succeed())
		Expect(m.Mem.Write(0x3100, 0x002A)).To(Succeed())
		Expect(m.Step()).To(Succeed())
		Expect(m.Regs.Get(vm.R1)).To(Equal(uint16(0x002A)))
		Expect(m.Regs.Get(vm.COND)).To(Equal(uint16(vm.CondP)))
	})

	It("S5: PUTS emits bytes up to the terminating zero and links R7", func() {
		Expect(vm.LoadImage(bytes.NewReader(image(0x3000, 0xF022)), m.Mem)).To(Succeed())
		m.Regs.Set(vm.R0, 0x4000)
		for i, w := range []uint16{0x0048, 0x0049, 0x0021, 0x0000} {
			Expect(m.Mem.Write(0x4000+uint16(i), w)).To(Succeed())
		}
		pcBefore := m.Regs.Get(vm.PC)
		Expect(m.Step()).To(Succeed())
		Expect(m.Flush()).To(Succeed())
		Expect(out.Bytes()).To(Equal([]byte{0x48, 0x49, 0x21}))
		Expect(m.Regs.Get(vm.R7)).To(Equal(pcBefore + 1))
	})

	It("S6: HALT writes the banner, flushes, and clears the running flag", func() {
		Expect(vm.LoadImage(bytes.NewReader(image(0x3000, 0xF025)), m.Mem)).To(Succeed())
		Expect(m.Step()).To(Succeed())
		Expect(out.String()).To(Equal("HALT\n"))
		Expect(m.Running).To(BeFalse())
	})

	It("S3: BR taken under P, not taken under N", func() {
		// nzp = Z|P, PCoffset9 = 2.
		takenImg := image(0x3000, 0x0602, 0x1000, 0x1020, 0x1040)
		mTaken := vm.New(bytes.NewReader(nil), &bytes.Buffer{})
		Expect(vm.LoadImage(bytes.NewReader(takenImg), mTaken.Mem)).To(Succeed())
		mTaken.Regs.Set(vm.COND, uint16(vm.CondP))
		Expect(mTaken.Step()).To(Succeed())
		Expect(mTaken.Regs.Get(vm.PC)).To(Equal(uint16(0x3003)))

		notTakenImg := image(0x3000, 0x0602, 0x1000)
		mNotTaken := vm.New(bytes.NewReader(nil), &bytes.Buffer{})
		Expect(vm.LoadImage(bytes.NewReader(notTakenImg), mNotTaken.Mem)).To(Succeed())
		mNotTaken.Regs.Set(vm.COND, uint16(vm.CondN))
		Expect(mNotTaken.Step()).To(Succeed())
		Expect(mNotTaken.Regs.Get(vm.PC)).To(Equal(uint16(0x3001)))
	})
})

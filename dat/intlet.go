package dat

// IntMin and IntMax bound the magnitude of a constructible Int to a
// 32-bit window.
const (
	IntMin = -(1 << 31)
	IntMax = (1 << 31) - 1
)

// SmallIntLow and SmallIntHigh bound the preallocated, interned range
// of small integers.
const (
	SmallIntLow  = -300
	SmallIntHigh = 700
)

// Int is a signed integer value, ordered and compared by numeric
// value.
type Int struct {
	Header
	n int32
}

func (v *Int) Value() int32 { return v.n }

// BitSize returns the minimum number of bits (sign-aware, plus one)
// needed to represent the value.
func (v *Int) BitSize() int {
	n := v.n
	if n < 0 {
		n = ^n // bit-size of the complement captures the same magnitude for negatives
	}
	size := 1
	for n != 0 {
		n >>= 1
		size++
	}
	return size
}

// Bit returns the n-th bit (0 = least significant), sign-extended for
// n beyond the value's bit size.
func (v *Int) Bit(n int) int {
	if n < 0 {
		raiseRange("negative bit index")
	}
	if n >= 32 {
		if v.n < 0 {
			return 1
		}
		return 0
	}
	return int((v.n >> uint(n)) & 1)
}

func (v *Int) GCMark(func(Value))  {}
func (v *Int) DebugString() string { return itoa(int64(v.n)) }

// CompareSameClass implements Orderable for Int (§4.6: ordering by
// numeric value).
func (v *Int) CompareSameClass(other Value) int {
	o := other.(*Int)
	switch {
	case v.n < o.n:
		return -1
	case v.n > o.n:
		return 1
	default:
		return 0
	}
}

// NewInt allocates an Int holding n. If u has an interned small-int
// for n, that singleton is returned instead and a is not consulted,
// so equal values in the cached range are always pointer-equal.
func NewInt(a Allocator, u *Universe, n int64) *Int {
	if n < IntMin || n > IntMax {
		raiseRange("Int magnitude exceeds the 32-bit window")
	}
	if n >= SmallIntLow && n <= SmallIntHigh {
		return u.smallInts[n-SmallIntLow]
	}
	v := &Int{n: int32(n)}
	return allocAs[*Int](a, u.classInt, v)
}

// itoa is a tiny local decimal formatter so dat does not need to pull
// in fmt/strconv for a one-liner used only by DebugString.
func itoa(n int64) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

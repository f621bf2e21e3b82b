package pio

// FIFO is the per-state-machine TX/RX queue pair contract. Depth is
// nominally 4 words per direction; Join doubles the depth of
// whichever direction stays active and disables the other.
type FIFO interface {
	// RXFull reports whether the RX FIFO has no room for another word.
	RXFull() bool
	// TXEmpty reports whether the TX FIFO has no word available.
	TXEmpty() bool
	// RXPush enqueues a word to the RX FIFO. Calling it while RXFull is
	// a programming error the caller must have already checked for.
	RXPush(word uint32)
	// TXPull dequeues a word from the TX FIFO. Calling it while TXEmpty
	// is a programming error the caller must have already checked for.
	TXPull() uint32
	// RXLevel and TXLevel report the current occupancy of each FIFO.
	RXLevel() int
	TXLevel() int
	// SetJoinRX and SetJoinTX merge the unused direction's storage into
	// the active one, doubling its depth.
	SetJoinRX(bool)
	SetJoinTX(bool)
}

// RingFIFO is a minimal in-memory ring-buffer FIFO, the default used
// when a state machine is not wired to a DMA-backed host FIFO. Joining
// one direction doubles that direction's depth; the other direction
// keeps its own 4-word buffer and is not disabled.
type RingFIFO struct {
	rx, tx   []uint32
	rxHead   int
	txHead   int
	rxN, txN int
	joinRX   bool
	joinTX   bool
}

const fifoBaseDepth = 4

// NewRingFIFO returns a FIFO with the default 4-word-per-direction
// depth and no join.
func NewRingFIFO() *RingFIFO {
	return &RingFIFO{
		rx: make([]uint32, fifoBaseDepth),
		tx: make([]uint32, fifoBaseDepth),
	}
}

func (f *RingFIFO) rxDepth() int {
	if f.joinRX {
		return fifoBaseDepth * 2
	}
	return fifoBaseDepth
}

func (f *RingFIFO) txDepth() int {
	if f.joinTX {
		return fifoBaseDepth * 2
	}
	return fifoBaseDepth
}

func (f *RingFIFO) RXFull() bool  { return f.rxN >= f.rxDepth() }
func (f *RingFIFO) TXEmpty() bool { return f.txN == 0 }

func (f *RingFIFO) RXPush(word uint32) {
	if f.RXFull() {
		panic("pio: RXPush on full RX FIFO")
	}
	idx := (f.rxHead + f.rxN) % len(f.rx)
	f.rx[idx] = word
	f.rxN++
}

func (f *RingFIFO) TXPull() uint32 {
	if f.TXEmpty() {
		panic("pio: TXPull on empty TX FIFO")
	}
	word := f.tx[f.txHead]
	f.txHead = (f.txHead + 1) % len(f.tx)
	f.txN--
	return word
}

func (f *RingFIFO) RXLevel() int { return f.rxN }
func (f *RingFIFO) TXLevel() int { return f.txN }

func (f *RingFIFO) SetJoinRX(join bool) {
	f.joinRX = join
	f.resize(&f.rx, f.rxDepth())
}

func (f *RingFIFO) SetJoinTX(join bool) {
	f.joinTX = join
	f.resize(&f.tx, f.txDepth())
}

func (f *RingFIFO) resize(buf *[]uint32, depth int) {
	if len(*buf) == depth {
		return
	}
	next := make([]uint32, depth)
	*buf = next
}

// TXPut is a host-side convenience for enqueuing a word the state
// machine will later PULL, used by tests and cmd/piosim.
func (f *RingFIFO) TXPut(word uint32) {
	idx := (f.txHead + f.txN) % len(f.tx)
	f.tx[idx] = word
	f.txN++
}

// RXGet is a host-side convenience for dequeuing a word the state
// machine previously PUSHed.
func (f *RingFIFO) RXGet() uint32 {
	word := f.rx[f.rxHead]
	f.rxHead = (f.rxHead + 1) % len(f.rx)
	f.rxN--
	return word
}

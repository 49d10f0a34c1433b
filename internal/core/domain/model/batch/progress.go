package batch

// Progress counts processed items of a loop. It only moves forward.
type Progress struct {
	done  int
	total int
}

// NewProgress returns a progress at 0 of total.
func NewProgress(total int) Progress {
	if total < 0 {
		total = 0
	}
	return Progress{total: total}
}

// Advance returns the progress after one more item; it never passes total.
func (p Progress) Advance() Progress {
	if p.done < p.total {
		p.done++
	}
	return p
}

func (p Progress) Done() int {
	return p.done
}

func (p Progress) Total() int {
	return p.total
}

// Fraction returns done/total in [0,1]. An empty loop reports 0.
func (p Progress) Fraction() float64 {
	if p.total == 0 {
		return 0
	}
	return float64(p.done) / float64(p.total)
}

// Percent returns the fraction as a whole percentage, rounded down.
func (p Progress) Percent() int {
	if p.total == 0 {
		return 0
	}
	return p.done * 100 / p.total
}

// IsComplete reports whether every item was processed.
func (p Progress) IsComplete() bool {
	return p.done == p.total
}

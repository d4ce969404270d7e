package solver

import "sort"

// Triplet is one coordinate-form contribution to a sparse symmetric system.
// The B2B model produces up to P*(P-1) candidate entries per net but only
// O(P) survive the extremum filter (spec §4.3); building in coordinate form
// and compressing once per iteration is simpler and just as correct as an
// incremental update, since edge weights change with every coordinate
// update anyway (see spec design note on sparse-matrix assembly).
type Triplet struct {
	Row, Col int
	Val      float64
}

// CSR is a compressed-sparse-row symmetric matrix assembled once per
// solver iteration from a Triplet list. Duplicate (row,col) pairs are
// summed.
type CSR struct {
	N      int
	RowPtr []int
	ColIdx []int
	Val    []float64
}

// BuildCSR compresses a coordinate-form triplet list into a CSR matrix of
// size n x n, summing duplicate entries and adding a small constant to any
// row whose diagonal would otherwise be zero (spec §4.3: "a small constant
// is implied on empty diagonals to avoid singularity").
func BuildCSR(n int, triplets []Triplet, emptyDiagEps float64) *CSR {
	sort.Slice(triplets, func(i, j int) bool {
		if triplets[i].Row != triplets[j].Row {
			return triplets[i].Row < triplets[j].Row
		}
		return triplets[i].Col < triplets[j].Col
	})

	rowPtr := make([]int, n+1)
	colIdx := make([]int, 0, len(triplets))
	val := make([]float64, 0, len(triplets))
	diagSeen := make([]bool, n)

	i := 0
	for r := 0; r < n; r++ {
		rowPtr[r] = len(colIdx)
		for i < len(triplets) && triplets[i].Row == r {
			c := triplets[i].Col
			v := triplets[i].Val
			i++
			for i < len(triplets) && triplets[i].Row == r && triplets[i].Col == c {
				v += triplets[i].Val
				i++
			}
			if c == r {
				diagSeen[r] = true
			}
			colIdx = append(colIdx, c)
			val = append(val, v)
		}
		if !diagSeen[r] {
			colIdx = append(colIdx, r)
			val = append(val, emptyDiagEps)
		}
	}
	rowPtr[n] = len(colIdx)

	return &CSR{N: n, RowPtr: rowPtr, ColIdx: colIdx, Val: val}
}

// MatVec computes y = A*x.
func (m *CSR) MatVec(x []float64) []float64 {
	y := make([]float64, m.N)
	for r := 0; r < m.N; r++ {
		var sum float64
		for k := m.RowPtr[r]; k < m.RowPtr[r+1]; k++ {
			sum += m.Val[k] * x[m.ColIdx[k]]
		}
		y[r] = sum
	}
	return y
}

// Diag returns the diagonal of A, used as the Jacobi preconditioner.
func (m *CSR) Diag() []float64 {
	d := make([]float64, m.N)
	for r := 0; r < m.N; r++ {
		for k := m.RowPtr[r]; k < m.RowPtr[r+1]; k++ {
			if m.ColIdx[k] == r {
				d[r] = m.Val[k]
			}
		}
	}
	return d
}

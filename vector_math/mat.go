package vector_math

import (
	"errors"
	"fmt"
	"strings"
	"unsafe"

	"github.com/chewxy/math32"
)

// Mat is a dense row-major matrix. Points are treated as column vectors, so a
// transform is applied as M * v and translations live in the last column.
type Mat [][]float32

func NewMat(r uint, c uint) (Mat, error) {
	if r == 0 || c == 0 {
		return nil, errors.New("cannot construct 0-sized matrix")
	}
	m := make([][]float32, r)
	for i := range m {
		m[i] = make([]float32, c)
	}
	return m, nil
}

func (m *Mat) Mult(b *Mat) (Mat, error) {
	rowsA, colsA := (*m).Size()
	rowsB, colsB := (*b).Size()
	if colsA != rowsB {
		return nil, fmt.Errorf(
			"can't multiply %dx%d matrix with %dx%d matrix, size of columns and rows do not match",
			rowsA, colsA, rowsB, colsB,
		)
	}
	C, _ := NewMat(uint(rowsA), uint(colsB))
	for i := 0; i < rowsA; i++ {
		for j := 0; j < colsB; j++ {
			for k := 0; k < colsA; k++ {
				C[i][j] += (*m)[i][k] * (*b)[k][j]
			}
		}
	}
	return C, nil
}

// MustMult is Mult for operands whose sizes are known to match, e.g. two 4x4 transforms.
func (m *Mat) MustMult(b *Mat) Mat {
	res, err := m.Mult(b)
	if err != nil {
		panic(err)
	}
	return res
}

func (m *Mat) Transpose() Mat {
	mT, _ := NewMat(uint(m.ColCnt()), uint(m.RowCnt()))
	for i := range *m {
		for j := range (*m)[i] {
			mT[j][i] = (*m)[i][j]
		}
	}
	return mT
}

func (m *Mat) Equals(b *Mat) bool {
	return m.EqualsTol(b, 0)
}

// EqualsTol compares element wise and accepts differences up to tol.
func (m *Mat) EqualsTol(b *Mat, tol float32) bool {
	rowsA, colsA := (*m).Size()
	rowsB, colsB := (*b).Size()
	if rowsA != rowsB || colsA != colsB {
		return false
	}
	for i := 0; i < rowsA; i++ {
		for j := 0; j < colsA; j++ {
			if math32.Abs((*m)[i][j]-(*b)[i][j]) > tol {
				return false
			}
		}
	}
	return true
}

// Description functions

func (m *Mat) RowCnt() int {
	return len(*m)
}

func (m *Mat) ColCnt() int {
	return len((*m)[0])
}

func (m *Mat) Size() (int, int) {
	return (*m).RowCnt(), (*m).ColCnt()
}

func (m *Mat) ByteSize() int {
	return int(unsafe.Sizeof((*m)[0][0])) * (*m).RowCnt() * (*m).ColCnt()
}

// Unroll flattens the matrix row by row.
func (m *Mat) Unroll() []float32 {
	cols := m.ColCnt()
	f := make([]float32, m.RowCnt()*cols)
	for i := range f {
		f[i] = (*m)[i/cols][i%cols]
	}
	return f
}

// ColumnMajor flattens the matrix column by column, which is the layout GLSL
// expects for a mat4 inside a uniform block or push constant range.
func (m *Mat) ColumnMajor() []float32 {
	mT := m.Transpose()
	return mT.Unroll()
}

func (m *Mat) ToString() string {
	mStr := strings.Builder{}
	for i := range *m {
		if i > 0 {
			mStr.WriteString("\n")
		}
		mStr.WriteString(fmt.Sprintf("%v", (*m)[i]))
	}
	return mStr.String()
}

func (m *Mat) Describe() string {
	return fmt.Sprintf(
		"%dx%d Matrix, %d Bytes in memory:\n%s",
		m.RowCnt(), m.ColCnt(), m.ByteSize(), m.ToString(),
	)
}

package vm

import (
	"testing"

	"github.com/holiman/uint256"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStackPushPop(t *testing.T) {
	st := newStack()
	defer returnStack(st)

	st.push(uint256.NewInt(1))
	st.push(uint256.NewInt(2))
	st.push(uint256.NewInt(3))
	require.Equal(t, 3, st.len())

	popped := st.pop()
	assert.Equal(t, *uint256.NewInt(3), popped)
	assert.Equal(t, 2, st.len())
	assert.Equal(t, uint256.NewInt(2), st.peek())
}

func TestStackSwapAndDup(t *testing.T) {
	st := newStack()
	defer returnStack(st)

	st.push(uint256.NewInt(10))
	st.push(uint256.NewInt(20))
	st.push(uint256.NewInt(30))

	st.swap(2) // swap top with 3rd-from-top
	assert.Equal(t, uint256.NewInt(10), st.peek())
	assert.Equal(t, uint256.NewInt(30), st.Back(2))

	st.dup(1) // duplicate current top
	assert.Equal(t, 4, st.len())
	assert.Equal(t, st.Back(0), st.Back(1))
}

func TestStackBackIndexing(t *testing.T) {
	st := newStack()
	defer returnStack(st)

	for i := uint64(1); i <= 5; i++ {
		st.push(uint256.NewInt(i))
	}
	// Back(0) is the top, most recently pushed.
	assert.Equal(t, uint256.NewInt(5), st.Back(0))
	assert.Equal(t, uint256.NewInt(1), st.Back(4))
}

func TestStackPoolReuseIsEmpty(t *testing.T) {
	st := newStack()
	st.push(uint256.NewInt(1))
	returnStack(st)

	st2 := newStack()
	assert.Equal(t, 0, st2.len(), "a stack returned to the pool must come back empty")
	returnStack(st2)
}

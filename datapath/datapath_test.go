package datapath

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vbutenko/csa-toolchain/isa"
)

func TestArithmeticLatchExecuteOutput(t *testing.T) {
	assert := assert.New(t)

	dp := New(make([]int32, 8), nil)
	dp.SelectOperands(isa.R1, isa.R2, isa.R3)
	dp.regWrite(isa.R1, 10)
	dp.regWrite(isa.R2, 3)
	dp.LatchALU(nil)
	require.NoError(t, dp.ExecuteALU(Sub))
	dp.LatchOutput()

	assert.Equal(int32(7), dp.RegRead(isa.R3))
	assert.False(dp.ZeroFlag())
}

func TestExecuteALUZeroFlag(t *testing.T) {
	dp := New(make([]int32, 8), nil)
	dp.SelectOperands(isa.R1, isa.R1, isa.R2)
	dp.LatchALU(nil)
	require.NoError(t, dp.ExecuteALU(Cmp))
	require.True(t, dp.ZeroFlag())
}

func TestDivisionByZeroIsArithError(t *testing.T) {
	dp := New(make([]int32, 8), nil)
	dp.SelectOperands(isa.R1, isa.R2, isa.R3)
	dp.regWrite(isa.R1, 10)
	dp.LatchALU(nil)

	err := dp.ExecuteALU(Div)
	require.Error(t, err)

	var arithErr *ArithError
	require.ErrorAs(t, err, &arithErr)
}

func TestReadWriteMemoryBounds(t *testing.T) {
	dp := New(make([]int32, 4), nil)
	dp.SelectOperands(isa.R0, isa.R1, isa.R0)
	dp.regWrite(isa.R1, 99)

	imm := int32(2)
	dp.LatchALU(&imm)
	require.NoError(t, dp.ExecuteALU(Right))
	require.NoError(t, dp.WriteMemory())
	require.Equal(t, int32(99), dp.Memory[2])

	require.NoError(t, dp.ExecuteALU(Right))
	require.NoError(t, dp.ReadMemory())
	require.Equal(t, int32(99), dp.OutputBus())

	oob := int32(50)
	dp.LatchALU(&oob)
	require.NoError(t, dp.ExecuteALU(Right))
	require.Error(t, dp.WriteMemory())
}

func TestR0WritesDiscarded(t *testing.T) {
	dp := New(make([]int32, 4), nil)
	dp.SelectOperands(isa.R1, isa.R1, isa.R0)
	dp.regWrite(isa.R1, 5)
	dp.LatchALU(nil)
	require.NoError(t, dp.ExecuteALU(Left))
	dp.LatchOutput()
	require.Equal(t, int32(0), dp.RegRead(isa.R0))
}

func TestInterruptLatch(t *testing.T) {
	dp := New(make([]int32, 4), nil)
	_, ok := dp.ConsumeLatch()
	require.False(t, ok)

	dp.SetLatch('h')
	ch, ok := dp.ConsumeLatch()
	require.True(t, ok)
	require.Equal(t, int32('h'), ch)

	_, ok = dp.ConsumeLatch()
	require.False(t, ok)
}

func TestScheduleDeliveryOrder(t *testing.T) {
	dp := New(make([]int32, 4), []ScheduleEntry{{Tick: 6, Char: 'h'}, {Tick: 13, Char: 'e'}})

	_, ok := dp.Receive(5)
	require.False(t, ok)

	ch, ok := dp.Receive(6)
	require.True(t, ok)
	require.Equal(t, int32('h'), ch)

	_, ok = dp.Receive(10)
	require.False(t, ok)

	ch, ok = dp.Receive(20)
	require.True(t, ok)
	require.Equal(t, int32('e'), ch)

	require.True(t, dp.InputExhausted())
}

func TestStackPointerInitialisedToLastAddress(t *testing.T) {
	dp := New(make([]int32, 10), nil)
	assert := assert.New(t)
	assert.Equal(int32(9), dp.RegRead(isa.SP))
}

package huffenc

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildTreeEmpty(t *testing.T) {
	t.Parallel()

	_, err := BuildTree(Frequencies{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestBuildTreeSingleSymbol(t *testing.T) {
	t.Parallel()

	tree, err := BuildTree(Frequencies{'x': 1000})
	require.NoError(t, err)

	assert.Equal(t, 1, tree.Len())
	assert.Equal(t, 1, tree.NumLeaves())
	root := tree.Node(tree.Root())
	assert.True(t, root.IsLeaf())
	assert.Equal(t, Symbol('x'), root.Symbol)
	assert.Equal(t, uint64(1000), root.Freq)
}

func TestBuildTreeTwoSymbols(t *testing.T) {
	t.Parallel()

	tree, err := BuildTree(Frequencies{'a': 3, 'b': 2})
	require.NoError(t, err)
	require.Equal(t, 3, tree.Len())

	root := tree.Node(tree.Root())
	assert.False(t, root.IsLeaf())
	assert.Equal(t, uint64(5), root.Freq)
	assert.Equal(t, InvalidSymbol, root.Symbol)

	// The less frequent symbol is extracted first and goes left.
	assert.Equal(t, Symbol('b'), tree.Node(root.Left).Symbol)
	assert.Equal(t, Symbol('a'), tree.Node(root.Right).Symbol)
}

func TestBuildTreeTieBreak(t *testing.T) {
	t.Parallel()

	// c (a leaf) and the merged {a, b} node both weigh 2; the leaf has the
	// lower ID and is extracted first.
	tree, err := BuildTree(Frequencies{'a': 1, 'b': 1, 'c': 2})
	require.NoError(t, err)

	root := tree.Node(tree.Root())
	left := tree.Node(root.Left)
	assert.True(t, left.IsLeaf())
	assert.Equal(t, Symbol('c'), left.Symbol)

	right := tree.Node(root.Right)
	assert.False(t, right.IsLeaf())
	assert.Equal(t, Symbol('a'), tree.Node(right.Left).Symbol)
	assert.Equal(t, Symbol('b'), tree.Node(right.Right).Symbol)
}

func TestBuildTreeShape(t *testing.T) {
	t.Parallel()

	tree, err := BuildTree(Frequencies{'a': 5, 'b': 9, 'c': 12, 'd': 13, 'e': 16, 'f': 45})
	require.NoError(t, err)

	expectDump := strings.Join([]string{
		"Tree{\n",
		"\t[10] freq=100\n",
		"\t\t[5] 'f' freq=45\n",
		"\t\t[9] freq=55\n",
		"\t\t\t[7] freq=25\n",
		"\t\t\t\t[2] 'c' freq=12\n",
		"\t\t\t\t[3] 'd' freq=13\n",
		"\t\t\t[8] freq=30\n",
		"\t\t\t\t[6] freq=14\n",
		"\t\t\t\t\t[0] 'a' freq=5\n",
		"\t\t\t\t\t[1] 'b' freq=9\n",
		"\t\t\t\t[4] 'e' freq=16\n",
		"}\n",
	}, "")

	var buf strings.Builder
	_, _ = tree.Dump(&buf)
	actualDump := buf.String()

	if expectDump != actualDump {
		t.Errorf("wrong output:\n\texpect: %s\n\tactual: %s", expectDump, actualDump)
	}
}

func TestTreeInvariants(t *testing.T) {
	t.Parallel()

	freqs := Frequencies{'a': 7, 'b': 1, 'c': 1, 'd': 3, 'e': 3, 'f': 20, 'g': 2}
	tree, err := BuildTree(freqs)
	require.NoError(t, err)

	assert.Equal(t, 2*len(freqs)-1, tree.Len())

	var leaves int
	tree.Walk(func(id NodeID, depth int) bool {
		n := tree.Node(id)
		if n.IsLeaf() {
			leaves++
			assert.Equal(t, freqs[n.Symbol], n.Freq, "leaf %v", n.Symbol)
			return true
		}
		if assert.NotEqual(t, NoNode, n.Left) && assert.NotEqual(t, NoNode, n.Right) {
			assert.Equal(t, tree.Node(n.Left).Freq+tree.Node(n.Right).Freq, n.Freq, "node %d", id)
		}
		return true
	})
	assert.Equal(t, len(freqs), leaves)
	assert.Equal(t, freqs.Total(), tree.Node(tree.Root()).Freq)
}

func TestTreeWalkStopsEarly(t *testing.T) {
	t.Parallel()

	tree, err := BuildTree(Frequencies{'a': 1, 'b': 2, 'c': 3})
	require.NoError(t, err)

	var visited int
	tree.Walk(func(NodeID, int) bool {
		visited++
		return visited < 2
	})
	assert.Equal(t, 2, visited)
}

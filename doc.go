/*
Package logik provides a simulator for combinational logic circuits built by
composing gates into larger composite gates.

A Gate is either a primitive boolean function (NOT, AND, NAND, OR, XOR, NOR,
XNOR) or a composite: an internal graph of chips (placed instances of other
gates) and connections between their pins. Gates live in a Library, which
resolves chip references by key and evaluates gates:

	l := logik.DefaultLibrary()
	not, _ := l.Lookup("NOT")
	and, _ := l.Lookup("AND")
	nand := l.MustChip("NAND", "a, b", "out",
		and.Part("a=a, b=b, out=ab"),
		not.Part("in=ab, out=out"),
	)
	out, err := l.Evaluate(nand, []bool{true, true}) // []bool{false}

Every gate gets a truth table when added to a library, so evaluating a
composite gate costs a single table lookup however deeply it is nested. Only
while building that table, composite wiring is walked by a breadth-first
propagation over its connection graph. Partial wiring is tolerated: chips
whose inputs are not all driven are not evaluated and their outputs read as
false.

Deleted gates keep their truth table and arity, so gates that use them keep
working, but their internal wiring is dropped.
*/
package logik

/*
Package step works on steps, pairs of consecutive nucleotides.

A step is a cmmn.Structure with the atoms of the first residue before
those of the second. StructureIsStep checks that what we have really is
a step. The Extract functions pull out named sets of atoms, using the
names from package bone, so modified residues work the same way as
standard ones.

From a step we get

  - Metrics: seven backbone torsions, two chi torsions, two distances
    between the residues and one torsion across them
  - Similarity to a reference conformer: RMSD after superposition and
    a distance over the metrics
  - Connectivity of two steps that share a residue: how far apart the
    shared atoms end up when a reference is fitted onto each step

Nothing here keeps state between calls, so every function can be
called from many goroutines at once.
*/
package step

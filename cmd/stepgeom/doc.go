/*
stepgeom reads nucleic acid structures in mmCIF format and looks at
them one dinucleotide step at a time. A step is two residues next to
each other in one chain.

Results are written in csv format.

Usage:

	stepgeom metrics [flags] file.cif [file2.cif.gz ...]
	stepgeom similarity [flags] --refs dir file.cif ...
	stepgeom connect [flags] --refs dir file.cif ...

metrics writes the nine torsions, the CC and NN distances and the mu
pseudo-torsion of every step. Angles are in degrees.

similarity compares each step to each NtC reference conformer in the
reference directory. It writes the RMSD after superposing the extended
backbones and the distance between the metrics. With --best, only the
closest reference is written.

connect gives each step its closest reference and then says how far
apart neighbouring steps put the C5' and O3' atoms of the residue they
share. Small numbers mean the two assignments agree.

Flags:

	-c, --chain A,B
	  	Only read these chains. A chain matches on label_asym_id or
	  	auth_asym_id.
	-m, --model N
	  	Read models up to N. The default is 1. Use -1 for every model.
	-o, --out filename
	  	Write output to filename. "-" or nothing means standard output.
	-r, --refs dir
	  	Directory with one file per NtC, like AA00.cif or AA00.cif.gz.
	  	If it has ntc_averages.cif, the average metrics for each class
	  	come from there.
	    --config file
	  	Settings file. Without it, stepgeom.yaml in the current
	  	directory is read if it is there. Flags win over settings.
	    --log-level level
	  	debug, info, warn or error. Messages go to standard error.

Steps with alternate conformations or missing atoms are reported at
warn level and left out.
*/
package main

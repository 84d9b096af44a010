// Package mmcif reads a file in mmcif/cif format.
//
// Reading mmcif files is interesting because they are big, but we do
// not want much of what is in them. Some features of the format make
// this simpler.
//  1. The first character on the line is decisive. A data item starts
//     with "_". A loop starts with loop_.
//  2. The PDB promises to use a certain style. In the atom_site table,
//     the columns are nearly always the same and in the same order. We
//     check this and only search for column names if it is not so.
//
// Everything that is not on the list of interesting data items and
// tables is jumped over. The atom_site table is always read. Its lines
// are sent in batches down a channel to a goroutine that turns them
// into atoms while the file is still being read.
//
// A question mark, ?, means a missing value. A dot, ., means not
// appropriate or deliberately left out. Both come back as the empty
// string or the default number.
//
// Chains come in two names. label_asym_id is the mmcif name and
// auth_asym_id is the old pdb chain. We keep both.
package mmcif

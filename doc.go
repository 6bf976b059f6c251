/*
 * doc.go, part of chaingen.
 *
 * Copyright 2025 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

/*
Package chaingen generates starting conformations for linear, coarse-grained chains
(e.g. disordered proteins where each bead is a residue, or a whole folded domain).

Each particle, or bead, has its own steric radius. The first bead is placed at the
origin and each of the following ones at the bond length from the previous one, in a
random (isotropic) direction, so that it does not overlap any earlier bead other
than its bonded neighbour. By default the bond length is the sum of the radii
of the bonded beads, i.e. bonded beads touch.

	**chaingen Capabilities**

    Generates single chains with a Builder, which owns its random stream, so
	results are reproducible for a given seed.

    Retries each bead a bounded number of times, and backtracks (removing
	recently placed beads) a bounded number of times, before giving up. A
	request either gives a complete chain or an error, never a partial chain.

    Generates ensembles of chains concurrently (GenerateEnsemble). The
	ensemble does not depend on the number of goroutines used.

    Checks complete chains for clashes (package clash).

    Computes radius of gyration and end-to-end distances, histograms of them
	(package histo) and the hydrodynamic radius and diffusion coefficient of an
	ensemble (package hydro).

    Translates protein sequences into bead radii (package beads).

The chaingen command (cmd/chaingen) exposes all of the above.
*/
package chaingen

package edge

// table holds the curated reference edges, grouped by element in ascending
// atomic number. K edges cover the light elements seen in absorption
// contamination checks, L edges the 3d transition metals, and M4/M5 the
// lanthanides. The slice is package-private and never mutated; queries sort
// filtered copies.
var table = []Edge{
	{"C", 6, ShellK, 284.2},
	{"N", 7, ShellK, 409.9},
	{"O", 8, ShellK, 543.1},
	{"F", 9, ShellK, 696.7},
	{"Ne", 10, ShellK, 870.2},
	{"Mg", 12, ShellK, 1303.0},
	{"Al", 13, ShellK, 1559.6},
	{"Si", 14, ShellK, 1839.0},

	{"Sc", 21, ShellL1, 498.0},
	{"Sc", 21, ShellL2, 403.6},
	{"Sc", 21, ShellL3, 398.7},
	{"Ti", 22, ShellL1, 560.9},
	{"Ti", 22, ShellL2, 460.2},
	{"Ti", 22, ShellL3, 453.8},
	{"V", 23, ShellL1, 626.7},
	{"V", 23, ShellL2, 519.8},
	{"V", 23, ShellL3, 512.1},
	{"Cr", 24, ShellL1, 696.0},
	{"Cr", 24, ShellL2, 583.8},
	{"Cr", 24, ShellL3, 574.1},
	{"Mn", 25, ShellL1, 769.1},
	{"Mn", 25, ShellL2, 649.9},
	{"Mn", 25, ShellL3, 638.7},
	{"Fe", 26, ShellL1, 844.6},
	{"Fe", 26, ShellL2, 719.9},
	{"Fe", 26, ShellL3, 706.8},
	{"Co", 27, ShellL1, 925.1},
	{"Co", 27, ShellL2, 793.2},
	{"Co", 27, ShellL3, 778.1},
	{"Ni", 28, ShellL1, 1008.6},
	{"Ni", 28, ShellL2, 870.0},
	{"Ni", 28, ShellL3, 852.7},
	{"Cu", 29, ShellL1, 1096.7},
	{"Cu", 29, ShellL2, 952.3},
	{"Cu", 29, ShellL3, 932.7},
	{"Zn", 30, ShellL1, 1196.2},
	{"Zn", 30, ShellL2, 1044.9},
	{"Zn", 30, ShellL3, 1021.8},

	{"La", 57, ShellM4, 853.2},
	{"La", 57, ShellM5, 835.8},
	{"Ce", 58, ShellM4, 901.3},
	{"Ce", 58, ShellM5, 883.8},
	{"Pr", 59, ShellM4, 951.1},
	{"Pr", 59, ShellM5, 931.7},
	{"Nd", 60, ShellM4, 1003.3},
	{"Nd", 60, ShellM5, 980.4},
	{"Sm", 62, ShellM4, 1110.9},
	{"Sm", 62, ShellM5, 1083.4},
	{"Eu", 63, ShellM4, 1158.6},
	{"Eu", 63, ShellM5, 1127.5},
	{"Gd", 64, ShellM4, 1221.9},
	{"Gd", 64, ShellM5, 1189.6},
	{"Tb", 65, ShellM4, 1276.9},
	{"Tb", 65, ShellM5, 1241.1},
	{"Dy", 66, ShellM4, 1332.5},
	{"Dy", 66, ShellM5, 1292.6},
	{"Ho", 67, ShellM4, 1391.5},
	{"Ho", 67, ShellM5, 1351.4},
	{"Er", 68, ShellM4, 1453.3},
	{"Er", 68, ShellM5, 1409.3},
	{"Tm", 69, ShellM4, 1514.6},
	{"Tm", 69, ShellM5, 1467.7},
	{"Yb", 70, ShellM4, 1576.3},
	{"Yb", 70, ShellM5, 1527.8},
}

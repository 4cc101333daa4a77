package dither

// Error diffusion kernels. Offsets are relative to the pixel being
// quantized; weights are divided by 1<<Shift or by Divisor.
var (
	Burkes = Kernel{
		Name: "burkes",
		Entries: []Entry{
			{1, 0, 8}, {2, 0, 4},
			{-2, 1, 2}, {-1, 1, 4}, {0, 1, 8}, {1, 1, 4}, {2, 1, 2},
		},
		Shift: 5,
	}

	// Atkinson only diffuses 6/8 of the error.
	Atkinson = Kernel{
		Name: "atkinson",
		Entries: []Entry{
			{1, 0, 1}, {2, 0, 1},
			{-1, 1, 1}, {0, 1, 1}, {1, 1, 1},
			{0, 2, 1},
		},
		Shift: 3,
	}

	JarvisJudiceNinke = Kernel{
		Name: "jarvis",
		Entries: []Entry{
			{1, 0, 7}, {2, 0, 5},
			{-2, 1, 3}, {-1, 1, 5}, {0, 1, 7}, {1, 1, 5}, {2, 1, 3},
			{-2, 2, 1}, {-1, 2, 3}, {0, 2, 5}, {1, 2, 3}, {2, 2, 1},
		},
		Divisor: 48,
	}

	FloydSteinberg = Kernel{
		Name: "floyd-steinberg",
		Entries: []Entry{
			{1, 0, 7},
			{-1, 1, 3}, {0, 1, 5}, {1, 1, 1},
		},
		Shift: 4,
	}

	Stucki = Kernel{
		Name: "stucki",
		Entries: []Entry{
			{1, 0, 8}, {2, 0, 4},
			{-2, 1, 2}, {-1, 1, 4}, {0, 1, 8}, {1, 1, 4}, {2, 1, 2},
			{-2, 2, 1}, {-1, 2, 2}, {0, 2, 4}, {1, 2, 2}, {2, 2, 1},
		},
		Divisor: 42,
	}

	Sierra3 = Kernel{
		Name: "sierra3",
		Entries: []Entry{
			{1, 0, 5}, {2, 0, 3},
			{-2, 1, 2}, {-1, 1, 4}, {0, 1, 5}, {1, 1, 4}, {2, 1, 2},
			{-1, 2, 2}, {0, 2, 3}, {1, 2, 2},
		},
		Shift: 5,
	}

	Sierra2 = Kernel{
		Name: "sierra2",
		Entries: []Entry{
			{1, 0, 4}, {2, 0, 3},
			{-2, 1, 1}, {-1, 1, 2}, {0, 1, 3}, {1, 1, 2}, {2, 1, 1},
		},
		Shift: 4,
	}

	SierraLite = Kernel{
		Name: "sierra-lite",
		Entries: []Entry{
			{1, 0, 2},
			{-1, 1, 1}, {0, 1, 1},
		},
		Shift: 2,
	}
)

// Kernels returns copies of every built-in kernel.
func Kernels() []Kernel {
	return []Kernel{
		Burkes.Clone(),
		Atkinson.Clone(),
		JarvisJudiceNinke.Clone(),
		FloydSteinberg.Clone(),
		Stucki.Clone(),
		Sierra3.Clone(),
		Sierra2.Clone(),
		SierraLite.Clone(),
	}
}

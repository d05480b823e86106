package domain

type AirplaneType struct {
	ID   int64
	Name string
}

type Airplane struct {
	ID         int64
	Name       string
	Rows       int
	SeatsInRow int
	Type       AirplaneType
	ImagePath  string
}

// Capacity is derived from the seat grid and never stored.
func (a Airplane) Capacity() int {
	return a.Rows * a.SeatsInRow
}

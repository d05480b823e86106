package domain

type Airport struct {
	ID             int64
	Name           string
	ClosestBigCity string
}

type Route struct {
	ID          int64
	Source      Airport
	Destination Airport
	Distance    int
}

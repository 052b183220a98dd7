package sport

// Sport is static seed data; football is the only row in current scope.
type Sport struct {
	ID   string
	Name string
}

const FootballID = "football"

func Football() Sport {
	return Sport{ID: FootballID, Name: "Football"}
}

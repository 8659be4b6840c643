package board

func price(p int) *int { return &p }

// DefaultLayout returns the standard 40-space layout in traversal order.
// Names are the exact keys used by landing statistics.
func DefaultLayout() []Space {
	return []Space{
		{Name: GoName},
		{Name: "Mediterranean Avenue", Price: price(60)},
		{Name: "Community Chest"},
		{Name: "Baltic Avenue", Price: price(60)},
		{Name: "Income Tax"},
		{Name: "Reading Railroad", Price: price(200)},
		{Name: "Oriental Avenue", Price: price(100)},
		{Name: "Vermont Avenue", Price: price(100)},
		{Name: "Connecticut Avenue", Price: price(120)},
		{Name: JailName},
		{Name: "St. Charles Place", Price: price(140)},
		{Name: "Electric Company", Price: price(150)},
		{Name: "States Avenue", Price: price(140)},
		{Name: "Virginia Avenue", Price: price(160)},
		{Name: "Pennsylvania Railroad", Price: price(200)},
		{Name: "St. James Place", Price: price(180)},
		{Name: "Community Chest"},
		{Name: "Tennessee Avenue", Price: price(180)},
		{Name: "New York Avenue", Price: price(200)},
		{Name: "Free Parking"},
		{Name: "Kentucky Avenue", Price: price(220)},
		{Name: "Chance"},
		{Name: "Indiana Avenue", Price: price(220)},
		{Name: "Illinois Avenue", Price: price(240)},
		{Name: "B. & O. Railroad", Price: price(200)},
		{Name: "Atlantic Avenue", Price: price(260)},
		{Name: "Ventnor Avenue", Price: price(260)},
		{Name: "Water Works", Price: price(150)},
		{Name: "Marvin Gardens", Price: price(280)},
		{Name: GoToJailName},
		{Name: "Pacific Avenue", Price: price(300)},
		{Name: "North Carolina Avenue", Price: price(300)},
		{Name: "Community Chest"},
		{Name: "Pennsylvania Avenue", Price: price(320)},
		{Name: "Short Line", Price: price(200)},
		{Name: "Chance"},
		{Name: "Park Place", Price: price(350)},
		{Name: "Luxury Tax"},
		{Name: "Boardwalk", Price: price(400)},
		{Name: "Chance"},
	}
}

package database

type sampleUser struct {
	Email, Password, FirstName, LastName, Phone, Role string
}

// Default accounts created on an empty users table.
var sampleUsers = []sampleUser{
	{"admin@krugerpark.com", "admin123", "Park", "Administrator", "+27 123 456 789", "admin"},
	{"ranger@krugerpark.com", "ranger123", "John", "Ranger", "+27 123 456 788", "ranger"},
	{"visitor@example.com", "visitor123", "Sarah", "Visitor", "+27 123 456 787", "visitor"},
}

type sampleGate struct {
	Name, Description, Location string
}

var sampleGates = []sampleGate{
	{"Malelane Gate", "Southern entrance, great for lions and elephants", "Southern Kruger"},
	{"Phabeni Gate", "Near Sabie, good for leopards and buffalo", "Central Kruger"},
	{"Numbi Gate", "Close to Hazyview, known for rhino sightings", "Central Kruger"},
	{"Paul Kruger Gate", "Main central gate, excellent for Big Five", "Central Kruger"},
	{"Orpen Gate", "Western gate, great for cheetah and wild dog", "Western Kruger"},
}

type sampleSighting struct {
	Gate, Animal, Probability, Confidence, Notes string
}

var sampleSightings = []sampleSighting{
	{"Malelane Gate", "lion", "high", "confirmed", "Pride of 12 near S25 road, including cubs. Best viewing: sunrise"},
	{"Malelane Gate", "elephant", "medium", "confirmed", "Herd of 30+ moving toward Crocodile River"},
	{"Phabeni Gate", "leopard", "medium", "confirmed", "Regular sightings near Phabeni dam. Often in marula trees"},
	{"Phabeni Gate", "buffalo", "high", "confirmed", "Large herd of 200+ grazing near entrance gate"},
	{"Numbi Gate", "rhino", "low", "reported", "Single white rhino spotted near Fayi Loop"},
	{"Paul Kruger Gate", "lion", "high", "confirmed", "Dominant male and pride frequenting Skukuza area"},
	{"Paul Kruger Gate", "elephant", "high", "confirmed", "Large breeding herds near Sabie River"},
	{"Orpen Gate", "leopard", "medium", "confirmed", "Female with cubs seen near Orpen dam"},
}

type sampleImage struct {
	URL, Caption string
	Primary      bool
}

type sampleReview struct {
	Guest   string
	Rating  int
	Comment string
}

type sampleAccommodation struct {
	Name, Type, Description   string
	Stars                     int
	GuestRating               float64
	ReviewCount               int
	PriceTier                 int
	Amenities                 []string
	Location, NearGates       string
	Contact, Website, Booking string
	WomenOwned, Eco, Family   bool
	Images                    []sampleImage
	Reviews                   []sampleReview
}

var sampleAccommodations = []sampleAccommodation{
	{
		Name: "Lion Sands Game Reserve", Type: "Lodge", Description: "Luxury safari experience with river views",
		Stars: 5, GuestRating: 4.9, ReviewCount: 234, PriceTier: 4,
		Amenities: []string{"pool", "spa", "wifi", "restaurant", "bar", "safari"},
		Location:  "Sabi Sand Game Reserve", NearGates: "Malelane Gate, Paul Kruger Gate",
		Contact: "+27 123 456 789", Website: "https://lionsands.com", Booking: "Book directly via website or preferred travel agent",
		Eco: true, Family: true,
		Images: []sampleImage{
			{"/images/lion-sands-1.jpg", "Main lodge area", true},
			{"/images/lion-sands-2.jpg", "Luxury suite", false},
		},
		Reviews: []sampleReview{
			{"Sarah Johnson", 5, "Absolutely incredible experience! The guides were knowledgeable and the accommodation was luxurious."},
			{"Michael Brown", 4, "Wonderful stay, but quite expensive. Worth it for a special occasion."},
		},
	},
	{
		Name: "Singita Lebombo Lodge", Type: "Lodge", Description: "Contemporary luxury lodge overlooking Nwanetsi River",
		Stars: 5, GuestRating: 4.8, ReviewCount: 189, PriceTier: 4,
		Amenities: []string{"pool", "spa", "wifi", "restaurant", "bar", "game_drives"},
		Location:  "Kruger National Park", NearGates: "Paul Kruger Gate, Phabeni Gate",
		Contact: "+27 123 456 788", Website: "https://singita.com", Booking: "Advanced booking required, all-inclusive packages",
		Eco:     true,
		Images:  []sampleImage{{"/images/singita-1.jpg", "River view suite", true}},
		Reviews: []sampleReview{{"Emma Wilson", 5, "Best safari experience of our lives. The attention to detail was exceptional."}},
	},
	{
		Name: "Jock Safari Lodge", Type: "Lodge", Description: "First private concession in Kruger National Park",
		Stars: 4, GuestRating: 4.7, ReviewCount: 156, PriceTier: 3,
		Amenities: []string{"pool", "wifi", "restaurant", "bar", "safari", "bush_walks"},
		Location:  "Fitzpatrick Gate", NearGates: "Malelane Gate",
		Contact: "+27 123 456 787", Website: "https://jocksafarilodge.com", Booking: "Direct booking available, family packages",
		Eco: true, Family: true,
		Images:  []sampleImage{{"/images/jock-1.jpg", "Swimming pool area", true}},
		Reviews: []sampleReview{{"David Thompson", 4, "Great family-friendly lodge. Kids loved the pool and game drives."}},
	},
	{
		Name: "Hamiltons Tented Camp", Type: "Tented Camp", Description: "Luxury tented camp with vintage safari ambiance",
		Stars: 4, GuestRating: 4.6, ReviewCount: 98, PriceTier: 3,
		Amenities: []string{"pool", "wifi", "restaurant", "bar", "game_drives"},
		Location:  "Imbali Safari Lodge", NearGates: "Numbi Gate",
		Contact: "+27 123 456 786", Website: "https://hamiltonstentedcamp.com", Booking: "Email or phone booking, romantic packages",
		WomenOwned: true, Eco: true,
		Images:  []sampleImage{{"/images/hamiltons-1.jpg", "Luxury tent interior", true}},
		Reviews: []sampleReview{{"Lisa Chen", 5, "Romantic and intimate. Perfect for our honeymoon."}},
	},
	{
		Name: "Pafuri Camp", Type: "Camp", Description: "Wilderness experience in Kruger's northern region",
		Stars: 3, GuestRating: 4.4, ReviewCount: 76, PriceTier: 2,
		Amenities: []string{"wifi", "restaurant", "bar", "game_drives", "bird_watching"},
		Location:  "Pafuri Gate", NearGates: "Punda Maria Gate",
		Contact: "+27 123 456 785", Website: "https://pafuricamp.com", Booking: "Online booking, wilderness experiences",
		Eco: true, Family: true,
		Images:  []sampleImage{{"/images/pafuri-1.jpg", "Wilderness camp", true}},
		Reviews: []sampleReview{{"James Miller", 4, "Authentic wilderness experience. Bird watching was spectacular."}},
	},
	{
		Name: "Satara Rest Camp", Type: "Rest Camp", Description: "Popular camp known for excellent lion sightings",
		Stars: 3, GuestRating: 4.3, ReviewCount: 345, PriceTier: 2,
		Amenities: []string{"pool", "restaurant", "shop", "petrol_station", "campground"},
		Location:  "Central Kruger", NearGates: "Orpen Gate, Paul Kruger Gate",
		Contact: "+27 123 456 784", Website: "https://sanparks.org", Booking: "Book via SANParks website, self-catering available",
		Family:  true,
		Images:  []sampleImage{{"/images/satara-1.jpg", "Rest camp facilities", true}},
		Reviews: []sampleReview{{"Karen Davis", 4, "Great value for money. Perfect for families on a budget."}},
	},
}

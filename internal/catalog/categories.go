package catalog

import "card-advisor/internal/domain"

// builtinCategories: фиксированный список категорий.
// MCC 5411 is listed by both groceries and warehouse on purpose.
func builtinCategories() []domain.Category {
	return []domain.Category{
		{
			ID:       "dining",
			Name:     "Dining",
			Keywords: []string{"restaurant", "restaurants", "cafe", "coffee", "coffee shop", "pizza", "sushi", "burger", "bistro", "diner", "grill", "taco", "bakery", "fast food", "food delivery", "takeout", "steakhouse", "brewery"},
			MccCodes: []int{5812, 5813, 5814},
			Aliases:  []string{"restaurant", "restaurants", "food", "dining_out", "dining_and_takeout"},
		},
		{
			ID:       "groceries",
			Name:     "Groceries",
			Keywords: []string{"grocery", "groceries", "supermarket", "grocery store", "food market", "whole foods", "trader joe", "kroger", "safeway", "aldi", "publix", "produce"},
			MccCodes: []int{5411, 5422, 5441, 5451, 5462, 5499},
			Aliases:  []string{"grocery", "supermarket", "supermarkets", "grocery_stores", "us_supermarkets"},
		},
		{
			ID:       "gas",
			Name:     "Gas",
			Keywords: []string{"gas station", "fuel", "petrol", "gasoline", "shell", "chevron", "exxon", "mobil", "texaco", "sunoco"},
			MccCodes: []int{5541, 5542, 5983},
			Aliases:  []string{"gas_stations", "fuel", "gasoline", "us_gas_stations"},
		},
		{
			ID:            "travel",
			Name:          "Travel",
			Keywords:      []string{"travel", "airline", "airlines", "flight", "airfare", "hotel", "motel", "resort", "airbnb", "expedia", "car rental", "cruise", "booking com"},
			MccCodes:      []int{3000, 4411, 4511, 4722, 7011, 7012, 7512},
			Aliases:       []string{"trips", "travel_portal"},
			Subcategories: []string{"travel_airfare", "travel_hotels", "travel_car_rental"},
		},
		{
			ID:       "entertainment",
			Name:     "Entertainment",
			Keywords: []string{"cinema", "movie", "movies", "theater", "theatre", "concert", "tickets", "ticketmaster", "bowling", "museum", "theme park", "amusement park", "live events"},
			MccCodes: []int{7832, 7922, 7929, 7941, 7991, 7996},
			Aliases:  []string{"events", "live_entertainment"},
		},
		{
			ID:       "streaming",
			Name:     "Streaming",
			Keywords: []string{"netflix", "hulu", "spotify", "disney plus", "hbo max", "youtube premium", "apple music", "streaming", "paramount plus", "peacock"},
			MccCodes: []int{4899, 5815, 5818},
			Aliases:  []string{"streaming_services", "select_streaming"},
			Parent:   "entertainment",
		},
		{
			ID:       "drugstores",
			Name:     "Drugstores",
			Keywords: []string{"pharmacy", "drugstore", "drug store", "cvs", "walgreens", "rite aid", "chemist", "prescription"},
			MccCodes: []int{5912, 5122},
			Aliases:  []string{"drugstore", "pharmacy", "pharmacies"},
		},
		{
			ID:       "home_improvement",
			Name:     "Home Improvement",
			Keywords: []string{"home depot", "lowes", "hardware", "hardware store", "home improvement", "lumber", "ace hardware", "menards"},
			MccCodes: []int{5200, 5211, 5231, 5251, 5261},
			Aliases:  []string{"hardware", "home_improvement_stores"},
		},
		{
			ID:       "department_stores",
			Name:     "Department Stores",
			Keywords: []string{"department store", "macys", "nordstrom", "kohls", "jcpenney", "dillards", "bloomingdales", "saks"},
			MccCodes: []int{5311},
			Aliases:  []string{"department_store", "retail"},
		},
		{
			ID:       "transit",
			Name:     "Transit",
			Keywords: []string{"uber", "lyft", "taxi", "cab", "metro", "train", "bus", "parking", "toll", "rideshare", "transit", "amtrak", "ferry"},
			MccCodes: []int{4111, 4112, 4121, 4131, 4784, 7523},
			Aliases:  []string{"transportation", "rideshare", "commuting", "local_transit"},
			Parent:   "travel",
		},
		{
			ID:       "utilities",
			Name:     "Utilities",
			Keywords: []string{"electric", "electricity", "water bill", "internet", "gas bill", "utility", "utilities", "comcast", "xfinity", "verizon", "t mobile", "phone bill", "power company"},
			MccCodes: []int{4900, 4814, 4816},
			Aliases:  []string{"utility", "bills", "phone_and_internet"},
		},
		{
			ID:       "warehouse",
			Name:     "Warehouse Clubs",
			Keywords: []string{"costco", "sams club", "bjs wholesale", "warehouse club", "wholesale"},
			MccCodes: []int{5300, 5411},
			Aliases:  []string{"warehouse_clubs", "wholesale_clubs", "wholesale"},
		},
		{
			ID:       "office_supplies",
			Name:     "Office Supplies",
			Keywords: []string{"staples", "office depot", "officemax", "office supplies", "stationery", "printer ink"},
			MccCodes: []int{5111, 5943, 5044},
			Aliases:  []string{"office", "office_supply_stores"},
		},
		{
			ID:       "insurance",
			Name:     "Insurance",
			Keywords: []string{"insurance", "geico", "state farm", "progressive", "allstate", "insurance premium"},
			MccCodes: []int{6300, 5960},
			Aliases:  []string{"insurance_premiums"},
		},
	}
}

package geo

// place is one entry in the static lookup table of known Nigerian
// cities and states. Matching is case-insensitive substring, so the
// names are stored lowercase.
type place struct {
	name string
	pt   Point
}

// Lagos is the fallback when nothing in the table matches.
var fallback = Point{Lat: 6.5244, Lng: 3.3792}

// cities are tried before states so that "Ikeja, Lagos" resolves to
// Ikeja rather than the state centroid.
var cities = []place{
	{"victoria island", Point{6.4281, 3.4216}},
	{"port harcourt", Point{4.8156, 7.0498}},
	{"benin city", Point{6.3350, 5.6037}},
	{"ado ekiti", Point{7.6233, 5.2209}},
	{"abeokuta", Point{7.1475, 3.3619}},
	{"abakaliki", Point{6.3249, 8.1137}},
	{"maiduguri", Point{11.8333, 13.1500}},
	{"ogbomoso", Point{8.1333, 4.2500}},
	{"umuahia", Point{5.5252, 7.4944}},
	{"yenagoa", Point{4.9267, 6.2676}},
	{"calabar", Point{4.9757, 8.3417}},
	{"katsina", Point{12.9855, 7.6171}},
	{"makurdi", Point{7.7322, 8.5391}},
	{"surulere", Point{6.4926, 3.3548}},
	{"badagry", Point{6.4150, 2.8813}},
	{"jalingo", Point{8.8833, 11.3667}},
	{"onitsha", Point{6.1667, 6.7833}},
	{"ibadan", Point{7.3775, 3.9470}},
	{"kaduna", Point{10.5105, 7.4165}},
	{"ilorin", Point{8.5000, 4.5500}},
	{"owerri", Point{5.4836, 7.0333}},
	{"sokoto", Point{13.0622, 5.2339}},
	{"bauchi", Point{10.3158, 9.8442}},
	{"lokoja", Point{7.8023, 6.7333}},
	{"osogbo", Point{7.7667, 4.5667}},
	{"gombe", Point{10.2897, 11.1673}},
	{"minna", Point{9.6139, 6.5569}},
	{"enugu", Point{6.4584, 7.5464}},
	{"zaria", Point{11.0667, 7.7000}},
	{"akure", Point{7.2526, 5.1931}},
	{"ikeja", Point{6.6018, 3.3515}},
	{"lekki", Point{6.4698, 3.5852}},
	{"warri", Point{5.5167, 5.7500}},
	{"lafia", Point{8.4939, 8.5152}},
	{"nnewi", Point{6.0100, 6.9100}},
	{"asaba", Point{6.1983, 6.7318}},
	{"awka", Point{6.2109, 7.0741}},
	// Generic metro names go after their neighbourhoods so that
	// "Lekki, Lagos" matches Lekki, not Lagos.
	{"lagos", Point{6.5244, 3.3792}},
	{"abuja", Point{9.0765, 7.3986}},
	{"kano", Point{12.0022, 8.5920}},
	{"yola", Point{9.2035, 12.4954}},
	{"uyo", Point{5.0333, 7.9333}},
	{"aba", Point{5.1066, 7.3667}},
	{"ife", Point{7.4905, 4.5521}},
	{"jos", Point{9.8965, 8.8583}},
	{"ota", Point{6.6804, 3.2356}},
	{"epe", Point{6.5841, 3.9834}},
}

var states = []place{
	{"cross river", Point{5.8702, 8.5988}},
	{"akwa ibom", Point{4.9057, 7.8537}},
	{"nasarawa", Point{8.5380, 8.3206}},
	{"adamawa", Point{9.3265, 12.3984}},
	{"anambra", Point{6.2209, 6.9370}},
	{"bayelsa", Point{4.7719, 6.0699}},
	{"zamfara", Point{12.1222, 6.2236}},
	{"plateau", Point{9.2182, 9.5179}},
	{"rivers", Point{4.8436, 6.9112}},
	{"taraba", Point{7.9994, 10.7740}},
	{"ebonyi", Point{6.2649, 8.0137}},
	{"jigawa", Point{12.2280, 9.5616}},
	{"borno", Point{11.8846, 13.1520}},
	{"benue", Point{7.3369, 8.7404}},
	{"delta", Point{5.7040, 5.9339}},
	{"kebbi", Point{11.4942, 4.2333}},
	{"kwara", Point{8.9669, 4.3874}},
	{"niger", Point{9.9309, 5.5983}},
	{"ekiti", Point{7.7190, 5.3110}},
	{"kogi", Point{7.7337, 6.6906}},
	{"ogun", Point{6.9980, 3.4737}},
	{"ondo", Point{6.9149, 5.1478}},
	{"osun", Point{7.5629, 4.5200}},
	{"yobe", Point{12.2939, 11.4390}},
	{"abia", Point{5.4527, 7.5248}},
	{"edo", Point{6.5438, 5.8987}},
	{"imo", Point{5.5720, 7.0588}},
	{"oyo", Point{8.1574, 3.6147}},
	{"fct", Point{9.0765, 7.3986}},
}

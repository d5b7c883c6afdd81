package artcache

import "testing"

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Red Panda", "red-panda"},
		{"  red   panda! ", "red-panda"},
		{"Axolotl", "axolotl"},
		{"Sea Otter", "sea-otter"},
		{"D'Artagnan the Gecko", "d-artagnan-the-gecko"},
		{"snow--leopard", "snow-leopard"},
		{"  ", ""},
		{"!!!", ""},
	}
	for _, c := range cases {
		if got := Slugify(c.in); got != c.want {
			t.Errorf("Slugify(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestSlugifyStable(t *testing.T) {
	variants := []string{"Fennec Fox", "fennec fox", "FENNEC  FOX", " fennec-fox "}
	want := Slugify(variants[0])
	for _, v := range variants {
		if got := Slugify(v); got != want {
			t.Errorf("Slugify(%q) = %q, want %q", v, got, want)
		}
	}
}

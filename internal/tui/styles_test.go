package tui

import (
	"strings"
	"testing"

	"github.com/beanmart/beanmart/pkg/domain"
)

func TestRoastStyleKnownRoast(t *testing.T) {
	for _, roast := range domain.ValidRoasts {
		t.Run(roast, func(t *testing.T) {
			rendered := RoastStyle(roast).Render(roast)
			if !strings.Contains(rendered, roast) {
				t.Errorf("RoastStyle(%q).Render(%q) = %q, want to contain %q", roast, roast, rendered, roast)
			}
		})
	}
}

func TestRoastStyleUnknownRoastFallback(t *testing.T) {
	rendered := RoastStyle("charcoal").Render("charcoal")
	if !strings.Contains(rendered, "charcoal") {
		t.Errorf("RoastStyle fallback did not render text: %q", rendered)
	}
}

func TestStatusStyle(t *testing.T) {
	for _, status := range []string{"pending", "paid", "shipped", "delivered", "cancelled", "lost"} {
		t.Run(status, func(t *testing.T) {
			rendered := StatusStyle(status).Render(status)
			if !strings.Contains(rendered, status) {
				t.Errorf("StatusStyle(%q).Render() = %q", status, rendered)
			}
		})
	}
}

func TestRenderShimmerLogoContainsLetters(t *testing.T) {
	for _, frame := range []int{0, 1, 57, 1000} {
		logo := renderShimmerLogo(frame)
		for _, ch := range "BEANMART" {
			if !strings.ContainsRune(logo, ch) {
				t.Errorf("frame %d: logo missing %q", frame, ch)
			}
		}
	}
}

func TestClampByte(t *testing.T) {
	tests := []struct {
		in   float64
		want int
	}{
		{-4, 0},
		{0, 0},
		{127.9, 127},
		{255, 255},
		{300, 255},
	}
	for _, tc := range tests {
		if got := clampByte(tc.in); got != tc.want {
			t.Errorf("clampByte(%v) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestHelpEntryFormat(t *testing.T) {
	result := helpEntry("q", "quit")
	if !strings.Contains(result, "q") {
		t.Errorf("helpEntry('q','quit') does not contain key 'q': %q", result)
	}
	if !strings.Contains(result, "quit") {
		t.Errorf("helpEntry('q','quit') does not contain label 'quit': %q", result)
	}
}

func TestHelpItemsArePublicPages(t *testing.T) {
	items := helpItems("https://beanmart.coffee/")
	if len(items) == 0 {
		t.Fatal("expected help links")
	}
	for _, it := range items {
		if !strings.HasPrefix(it.url, "https://beanmart.coffee/") {
			t.Errorf("url %q not under storefront", it.url)
		}
		if strings.Contains(it.url, "//beanmart.coffee//") {
			t.Errorf("url %q has doubled slash", it.url)
		}
		for _, private := range []string{"/account", "/admin", "/login"} {
			if strings.HasSuffix(it.url, private) {
				t.Errorf("help links include private page %q", it.url)
			}
		}
	}
	if items[0].label != "Shop" || items[0].desc != "beanmart.coffee/shop" {
		t.Errorf("items[0] = %+v", items[0])
	}
}

func TestHelpViewMarksCursor(t *testing.T) {
	items := helpItems("https://beanmart.coffee")
	view := helpView(items, 1)
	if !strings.Contains(view, "> ") {
		t.Error("expected cursor marker in help view")
	}
	for _, it := range items {
		if !strings.Contains(view, it.desc) {
			t.Errorf("help view missing %q", it.desc)
		}
	}
}

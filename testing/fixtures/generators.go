// Package fixtures provides randomized entity generators for create and
// update scenarios, plus deliberately broken records for negative tests.
package fixtures

import (
	"fmt"
	"math/rand"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/calegari/go-apitest/resource"
)

var structCheck = validator.New()

// Generator produces randomized fixture records. Seeded word choices are
// deterministic, which keeps failing scenarios reproducible; uniqueness tags
// on emails and usernames intentionally differ across runs.
type Generator struct {
	rnd *rand.Rand
}

// New creates a deterministic generator from a seed.
func New(seed int64) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

var (
	firstNames = []string{"Ada", "Grace", "Alan", "Edsger", "Barbara", "Donald"}
	lastNames  = []string{"Lovelace", "Hopper", "Turing", "Dijkstra", "Liskov", "Knuth"}
	cities     = []string{"Gwenborough", "Wisokyburgh", "McKenziehaven", "South Elvis"}
	words      = []string{"lorem", "ipsum", "dolor", "sit", "amet", "consectetur", "adipiscing", "elit", "sed", "tempor"}
)

func (g *Generator) pick(list []string) string {
	return list[g.rnd.Intn(len(list))]
}

// tag returns a short unique suffix so generated emails and usernames do not
// collide across runs.
func (g *Generator) tag() string {
	return uuid.NewString()[:8]
}

func (g *Generator) sentence(n int) string {
	s := ""
	for i := 0; i < n; i++ {
		if i > 0 {
			s += " "
		}
		s += g.pick(words)
	}
	return s
}

// User produces a valid randomized user record without an id; the backend
// assigns one on create.
func (g *Generator) User() resource.User {
	first := g.pick(firstNames)
	last := g.pick(lastNames)
	tag := g.tag()
	return resource.User{
		Name:     first + " " + last,
		Username: first + "." + tag,
		Email:    fmt.Sprintf("%s.%s@example.com", first, tag),
		Phone:    fmt.Sprintf("1-%03d-%03d-%04d", g.rnd.Intn(1000), g.rnd.Intn(1000), g.rnd.Intn(10000)),
		Website:  fmt.Sprintf("https://%s.example.org", tag),
		Address: resource.Address{
			Street:  fmt.Sprintf("%d %s Light", g.rnd.Intn(9000)+1, g.pick(lastNames)),
			Suite:   fmt.Sprintf("Apt. %d", g.rnd.Intn(900)+100),
			City:    g.pick(cities),
			Zipcode: fmt.Sprintf("%05d-%04d", g.rnd.Intn(100000), g.rnd.Intn(10000)),
			Geo: resource.Geo{
				Lat: fmt.Sprintf("%.4f", g.rnd.Float64()*180-90),
				Lng: fmt.Sprintf("%.4f", g.rnd.Float64()*360-180),
			},
		},
		Company: resource.Company{
			Name:        last + " LLC",
			CatchPhrase: g.sentence(3),
			BS:          g.sentence(3),
		},
	}
}

// Post produces a valid randomized post record for the given user.
func (g *Generator) Post(userID int) resource.Post {
	return resource.Post{
		Title:  g.sentence(4),
		Body:   g.sentence(12),
		UserID: userID,
	}
}

// Comment produces a valid randomized comment record for the given post.
func (g *Generator) Comment(postID int) resource.Comment {
	return resource.Comment{
		Name:   g.sentence(3),
		Email:  fmt.Sprintf("%s.%s@example.com", g.pick(firstNames), g.tag()),
		Body:   g.sentence(10),
		PostID: postID,
	}
}

// InvalidUser produces a user payload that violates the User schema: the
// named field is dropped entirely.
func (g *Generator) InvalidUser(missingField string) map[string]any {
	u := g.User()
	obj := map[string]any{
		"id":       1,
		"name":     u.Name,
		"username": u.Username,
		"email":    u.Email,
		"phone":    u.Phone,
		"website":  u.Website,
		"address":  map[string]any{"city": u.Address.City},
		"company":  map[string]any{"name": u.Company.Name},
	}
	delete(obj, missingField)
	return obj
}

// InvalidPost produces a post payload with a wrongly-typed id and no userId.
func (g *Generator) InvalidPost() map[string]any {
	return map[string]any{
		"id":    "not-a-number",
		"title": g.sentence(3),
		"body":  g.sentence(8),
	}
}

// InvalidComment produces a comment payload with a malformed email and no
// postId.
func (g *Generator) InvalidComment() map[string]any {
	return map[string]any{
		"id":    1,
		"name":  g.sentence(2),
		"email": "invalid-email",
		"body":  g.sentence(6),
	}
}

// Valid runs struct-tag validation over a generated record. Fixture bugs
// surface here instead of as confusing backend rejections.
func Valid(v any) error {
	return structCheck.Struct(v)
}

package endpoint

import (
	"strings"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/mock"

	"github.com/joblyhq/jobly-api/auth"
	"github.com/joblyhq/jobly-api/config"
	"github.com/joblyhq/jobly-api/db"
	"github.com/joblyhq/jobly-api/internal/testutil"
	"github.com/joblyhq/jobly-api/internal/testutil/rest"
	"github.com/joblyhq/jobly-api/model"
	"github.com/joblyhq/jobly-api/rest/models"
	"github.com/joblyhq/jobly-api/types"
)

func createConfig() *JoblyEndpointConfig {
	cfg := NewEndpointConfigWithLogger(testutil.TestLogger(), "")
	return cfg.WithSecretKey(config.TestSecretKey).WithBcryptCost(4)
}

func createRoutes(cfg *JoblyEndpointConfig) (*db.SessionMock, []types.Route) {
	sessionMock := db.NewSessionMock()
	endpoint := cfg.newEndpointWithDb(db.NewDbWithSession(sessionMock))
	return sessionMock, endpoint.RoutesRest("")
}

func queryPrefix(prefix string) interface{} {
	return mock.MatchedBy(func(query string) bool {
		return strings.HasPrefix(query, prefix)
	})
}

func companyRow(handle string) map[string]interface{} {
	return map[string]interface{}{
		"handle":       handle,
		"name":         "C " + handle,
		"description":  "Desc " + handle,
		"numEmployees": int64(10),
		"logoUrl":      nil,
	}
}

func userRow(username string, isAdmin bool) map[string]interface{} {
	return map[string]interface{}{
		"username":  username,
		"firstName": "U1F",
		"lastName":  "U1L",
		"email":     username + "@email.com",
		"isAdmin":   isAdmin,
	}
}

func rows(values ...map[string]interface{}) []map[string]interface{} {
	return append([]map[string]interface{}{}, values...)
}

var _ = Describe("JoblyEndpoint", func() {
	var (
		session *db.SessionMock
		routes  []types.Route
	)

	anonymous := rest.Request{}
	asUser := rest.Request{Token: testutil.UserToken()}
	asAdmin := rest.Request{Token: testutil.AdminToken()}

	BeforeEach(func() {
		session, routes = createRoutes(createConfig())
	})

	Describe("/companies", func() {
		It("Should list companies for anonymous callers", func() {
			session.On("Query", queryPrefix("SELECT handle"), mock.Anything).
				Return(rows(companyRow("c1"), companyRow("c2")), nil)

			var response models.CompaniesResponse
			code := rest.ExecuteGet(routes, anonymous, "/companies", &response)
			Expect(code).To(Equal(200))
			Expect(response.Companies).To(HaveLen(2))
		})

		It("Should bind the filters in order", func() {
			session.On("Query",
				`SELECT handle, name, description, num_employees AS "numEmployees", logo_url AS "logoUrl" FROM companies `+
					`WHERE name ILIKE '%' || $1 || '%' AND num_employees >= $2 ORDER BY name`,
				[]interface{}{"net", 10}).
				Return(rows(companyRow("c1")), nil)

			var response models.CompaniesResponse
			code := rest.ExecuteGet(routes, rest.Request{Query: "nameLike=net&minEmployees=10"}, "/companies", &response)
			Expect(code).To(Equal(200))
			session.AssertExpectations(GinkgoT())
		})

		It("Should reject a minimum above the maximum", func() {
			var response models.ModelError
			code := rest.ExecuteGet(routes, rest.Request{Query: "minEmployees=10&maxEmployees=1"}, "/companies", &response)
			Expect(code).To(Equal(400))
			Expect(response.Error.Message).To(Equal("minEmployees needs to be less than or equal to maxEmployees."))
			session.AssertNumberOfCalls(GinkgoT(), "Query", 0)
		})

		It("Should reject unknown filters", func() {
			var response models.ModelError
			code := rest.ExecuteGet(routes, rest.Request{Query: "color=red"}, "/companies", &response)
			Expect(code).To(Equal(400))
			Expect(response.Error.Status).To(Equal(400))
		})

		It("Should ignore an invalid token on public routes", func() {
			session.On("Query", queryPrefix("SELECT handle"), mock.Anything).Return(rows(), nil)

			var response models.CompaniesResponse
			code := rest.ExecuteGet(routes, rest.Request{Token: "not-a-token"}, "/companies", &response)
			Expect(code).To(Equal(200))
			Expect(response.Companies).To(BeEmpty())
		})

		It("Should only let admins create companies", func() {
			body := `{"handle":"new","name":"New","description":"DescNew","numEmployees":10}`

			var response models.ModelError
			Expect(rest.ExecutePost(routes, rest.Request{Body: body}, "/companies", &response)).To(Equal(401))
			Expect(response.Error.Message).To(Equal("Unauthorized"))
			Expect(rest.ExecutePost(routes, rest.Request{Token: asUser.Token, Body: body}, "/companies", nil)).
				To(Equal(401))
			session.AssertNumberOfCalls(GinkgoT(), "Query", 0)

			session.On("Query", "SELECT handle FROM companies WHERE handle = $1", []interface{}{"new"}).
				Return(rows(), nil)
			session.On("Query", queryPrefix("INSERT INTO companies"), mock.Anything).
				Return(rows(companyRow("new")), nil)

			var created models.CompanyResponse
			code := rest.ExecutePost(routes, rest.Request{Token: asAdmin.Token, Body: body}, "/companies", &created)
			Expect(code).To(Equal(201))
			Expect(created.Company).To(HaveKeyWithValue("handle", "new"))
		})

		It("Should report duplicate companies", func() {
			session.On("Query", "SELECT handle FROM companies WHERE handle = $1", []interface{}{"c1"}).
				Return(rows(map[string]interface{}{"handle": "c1"}), nil)

			var response models.ModelError
			code := rest.ExecutePost(routes,
				rest.Request{Token: asAdmin.Token, Body: `{"handle":"c1","name":"C1","description":"Desc1"}`},
				"/companies", &response)
			Expect(code).To(Equal(400))
			Expect(response.Error.Message).To(Equal("Duplicate company: c1"))
		})

		It("Should reject invalid company payloads", func() {
			var response models.ModelError
			code := rest.ExecutePost(routes,
				rest.Request{Token: asAdmin.Token, Body: `{"handle":"c1","name":"C1","description":"Desc1","extra":1}`},
				"/companies", &response)
			Expect(code).To(Equal(400))
			session.AssertNumberOfCalls(GinkgoT(), "Query", 0)
		})

		It("Should return 404 for a missing company", func() {
			session.On("Query", queryPrefix("SELECT handle"), []interface{}{"nope"}).Return(rows(), nil)

			var response models.ModelError
			code := rest.ExecuteGet(routes, anonymous, "/companies/%s", &response, "nope")
			Expect(code).To(Equal(404))
			Expect(response.Error.Message).To(Equal("No company: nope"))
		})

		It("Should update a company as admin", func() {
			session.On("Query",
				`UPDATE companies SET "name"=$1, "num_employees"=$2 WHERE handle = $3 RETURNING `+
					`handle, name, description, num_employees AS "numEmployees", logo_url AS "logoUrl"`,
				[]interface{}{"New", int64(42), "c1"}).
				Return(rows(companyRow("c1")), nil)

			var response models.CompanyResponse
			code := rest.ExecutePatch(routes,
				rest.Request{Token: asAdmin.Token, Body: `{"name":"New","numEmployees":42}`},
				"/companies/%s", &response, "c1")
			Expect(code).To(Equal(200))
			Expect(response.Company).To(HaveKeyWithValue("handle", "c1"))
		})

		It("Should reject changing the handle", func() {
			var response models.ModelError
			code := rest.ExecutePatch(routes,
				rest.Request{Token: asAdmin.Token, Body: `{"handle":"c1-new"}`},
				"/companies/%s", &response, "c1")
			Expect(code).To(Equal(400))
			session.AssertNumberOfCalls(GinkgoT(), "Query", 0)
		})

		It("Should reject an empty update", func() {
			var response models.ModelError
			code := rest.ExecutePatch(routes, rest.Request{Token: asAdmin.Token, Body: `{}`},
				"/companies/%s", &response, "c1")
			Expect(code).To(Equal(400))
			Expect(response.Error.Message).To(Equal("No data"))
		})

		It("Should delete a company as admin", func() {
			session.On("Query", "DELETE FROM companies WHERE handle = $1 RETURNING handle", []interface{}{"c1"}).
				Return(rows(map[string]interface{}{"handle": "c1"}), nil)

			Expect(rest.ExecuteDelete(routes, asUser, "/companies/%s", nil, "c1")).To(Equal(401))

			var response types.Deleted
			Expect(rest.ExecuteDelete(routes, asAdmin, "/companies/%s", &response, "c1")).To(Equal(200))
			Expect(response.Deleted).To(Equal("c1"))
		})
	})

	Describe("/jobs", func() {
		It("Should filter jobs with equity", func() {
			session.On("Query",
				`SELECT id, title, salary, equity, company_handle AS "companyHandle" FROM jobs WHERE equity > $1 ORDER BY id`,
				[]interface{}{0}).
				Return(rows(map[string]interface{}{
					"id": int64(1), "title": "J1", "salary": int64(1), "equity": "0.1", "companyHandle": "c1",
				}), nil)

			var response models.JobsResponse
			code := rest.ExecuteGet(routes, rest.Request{Query: "hasEquity=true"}, "/jobs", &response)
			Expect(code).To(Equal(200))
			Expect(response.Jobs).To(HaveLen(1))
		})

		It("Should return 404 for an id that is not a number", func() {
			var response models.ModelError
			code := rest.ExecuteGet(routes, anonymous, "/jobs/%s", &response, "abc")
			Expect(code).To(Equal(404))
			Expect(response.Error.Message).To(Equal("No job: abc"))
			session.AssertNumberOfCalls(GinkgoT(), "Query", 0)
		})

		It("Should only let admins delete jobs", func() {
			Expect(rest.ExecuteDelete(routes, anonymous, "/jobs/%s", nil, "1")).To(Equal(401))
			Expect(rest.ExecuteDelete(routes, asUser, "/jobs/%s", nil, "1")).To(Equal(401))
			session.AssertNumberOfCalls(GinkgoT(), "Query", 0)
		})
	})

	Describe("/users", func() {
		It("Should let a user read itself", func() {
			session.On("Query", queryPrefix("SELECT username"), []interface{}{testutil.UserUsername}).
				Return(rows(userRow(testutil.UserUsername, false)), nil)

			var response models.UserResponse
			code := rest.ExecuteGet(routes, asUser, "/users/%s", &response, testutil.UserUsername)
			Expect(code).To(Equal(200))
			Expect(response.User.Username).To(Equal(testutil.UserUsername))
		})

		It("Should let an admin read any user", func() {
			session.On("Query", queryPrefix("SELECT username"), []interface{}{"u2"}).
				Return(rows(userRow("u2", false)), nil)

			var response models.UserResponse
			Expect(rest.ExecuteGet(routes, asAdmin, "/users/%s", &response, "u2")).To(Equal(200))
		})

		It("Should reject other users and anonymous callers", func() {
			var response models.ModelError
			Expect(rest.ExecuteGet(routes, asUser, "/users/%s", &response, "u2")).To(Equal(401))
			Expect(response.Error.Message).To(Equal("Unauthorized"))
			Expect(rest.ExecuteGet(routes, anonymous, "/users/%s", nil, testutil.UserUsername)).To(Equal(401))
			Expect(rest.ExecuteGet(routes, asUser, "/users", nil)).To(Equal(401))
			session.AssertNumberOfCalls(GinkgoT(), "Query", 0)
		})

		It("Should reject a token without a username as a bad request", func() {
			token := rest.Request{Token: testutil.CreateToken("", true)}
			var response models.ModelError
			Expect(rest.ExecuteGet(routes, token, "/users", &response)).To(Equal(400))
			Expect(response.Error.Message).To(Equal("Bad Request"))
		})

		It("Should let a user delete itself", func() {
			session.On("Query", "DELETE FROM users WHERE username = $1 RETURNING username",
				[]interface{}{testutil.UserUsername}).
				Return(rows(map[string]interface{}{"username": testutil.UserUsername}), nil)

			var response types.Deleted
			Expect(rest.ExecuteDelete(routes, asUser, "/users/%s", &response, testutil.UserUsername)).To(Equal(200))
			Expect(response.Deleted).To(Equal(testutil.UserUsername))
		})
	})

	Describe("/auth", func() {
		It("Should issue a token for valid credentials", func() {
			hashed, err := auth.HashPassword("password1", 4)
			Expect(err).ToNot(HaveOccurred())
			row := userRow(testutil.UserUsername, false)
			row["password"] = hashed
			session.On("Query", queryPrefix("SELECT username"), []interface{}{testutil.UserUsername}).
				Return(rows(row), nil)

			var response models.TokenResponse
			code := rest.ExecutePost(routes,
				rest.Request{Body: `{"username":"u1","password":"password1"}`}, "/auth/token", &response)
			Expect(code).To(Equal(200))

			principal, ok := auth.NewTokenVerifier([]byte(config.TestSecretKey)).Verify(response.Token)
			Expect(ok).To(BeTrue())
			Expect(principal.Username).To(Equal(testutil.UserUsername))
			Expect(principal.IsAdmin).To(BeFalse())
		})

		It("Should reject a wrong password", func() {
			hashed, err := auth.HashPassword("password1", 4)
			Expect(err).ToNot(HaveOccurred())
			row := userRow(testutil.UserUsername, false)
			row["password"] = hashed
			session.On("Query", queryPrefix("SELECT username"), mock.Anything).Return(rows(row), nil)

			var response models.ModelError
			code := rest.ExecutePost(routes,
				rest.Request{Body: `{"username":"u1","password":"nope"}`}, "/auth/token", &response)
			Expect(code).To(Equal(401))
			Expect(response.Error.Message).To(Equal(model.MsgInvalidCredentials))
		})

		It("Should reject an incomplete registration", func() {
			var response models.ModelError
			code := rest.ExecutePost(routes, rest.Request{Body: `{"username":"new"}`}, "/auth/register", &response)
			Expect(code).To(Equal(400))
			session.AssertNumberOfCalls(GinkgoT(), "Query", 0)
		})
	})
})

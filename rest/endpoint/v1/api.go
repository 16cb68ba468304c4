package endpoint

import (
	"fmt"
	"io"
	"net/http"

	"github.com/joblyhq/jobly-api/db"
	"github.com/joblyhq/jobly-api/model"
	e "github.com/joblyhq/jobly-api/rest/errors"
	m "github.com/joblyhq/jobly-api/rest/models"
	t "github.com/joblyhq/jobly-api/rest/translator"
	"github.com/joblyhq/jobly-api/types"
)

func (s *routeList) Token(w http.ResponseWriter, r *http.Request) {
	var credentials m.Credentials
	if err := s.parseAndValidatePayload(&credentials, w, r); err != nil {
		s.respondWithError(w, err)
		return
	}

	user, err := s.stores.Users.Authenticate(r.Context(), credentials.Username, credentials.Password)
	if err != nil {
		s.respondWithError(w, err)
		return
	}

	s.respondWithToken(w, http.StatusOK, user)
}

// Register signs up a regular user. Admins are only added through AddUser.
func (s *routeList) Register(w http.ResponseWriter, r *http.Request) {
	var newUser model.NewUser
	if err := s.parseAndValidatePayload(&newUser, w, r); err != nil {
		s.respondWithError(w, err)
		return
	}
	newUser.IsAdmin = false

	user, err := s.stores.Users.Register(r.Context(), newUser)
	if err != nil {
		s.respondWithError(w, err)
		return
	}

	s.respondWithToken(w, http.StatusCreated, user)
}

func (s *routeList) AddCompany(w http.ResponseWriter, r *http.Request) {
	var newCompany model.NewCompany
	if err := s.parseAndValidatePayload(&newCompany, w, r); err != nil {
		s.respondWithError(w, err)
		return
	}

	company, err := s.stores.Companies.Create(r.Context(), newCompany)
	if err != nil {
		s.respondWithError(w, err)
		return
	}

	RespondJSONObjectWithCode(w, http.StatusCreated, m.CompanyResponse{Company: company})
}

func (s *routeList) GetCompanies(w http.ResponseWriter, r *http.Request) {
	filter, err := t.ToCompanyFilter(r.URL.Query())
	if err != nil {
		s.respondWithError(w, err)
		return
	}

	companies, err := s.stores.Companies.FindAll(r.Context(), filter)
	if err != nil {
		s.respondWithError(w, err)
		return
	}

	RespondJSONObjectWithCode(w, http.StatusOK, m.CompaniesResponse{Companies: companies})
}

func (s *routeList) GetCompany(w http.ResponseWriter, r *http.Request) {
	company, err := s.stores.Companies.Get(r.Context(), s.params(r, "handle"))
	if err != nil {
		s.respondWithError(w, err)
		return
	}

	RespondJSONObjectWithCode(w, http.StatusOK, m.CompanyResponse{Company: company})
}

func (s *routeList) UpdateCompany(w http.ResponseWriter, r *http.Request) {
	spec, err := s.parseUpdate(&m.CompanyUpdate{}, w, r)
	if err != nil {
		s.respondWithError(w, err)
		return
	}

	company, err := s.stores.Companies.Update(r.Context(), s.params(r, "handle"), spec)
	if err != nil {
		s.respondWithError(w, err)
		return
	}

	RespondJSONObjectWithCode(w, http.StatusOK, m.CompanyResponse{Company: company})
}

func (s *routeList) DeleteCompany(w http.ResponseWriter, r *http.Request) {
	handle := s.params(r, "handle")
	if err := s.stores.Companies.Remove(r.Context(), handle); err != nil {
		s.respondWithError(w, err)
		return
	}

	RespondJSONObjectWithCode(w, http.StatusOK, types.Deleted{Deleted: handle})
}

func (s *routeList) AddJob(w http.ResponseWriter, r *http.Request) {
	var newJob model.NewJob
	if err := s.parseAndValidatePayload(&newJob, w, r); err != nil {
		s.respondWithError(w, err)
		return
	}

	job, err := s.stores.Jobs.Create(r.Context(), newJob)
	if err != nil {
		s.respondWithError(w, err)
		return
	}

	RespondJSONObjectWithCode(w, http.StatusCreated, m.JobResponse{Job: job})
}

func (s *routeList) GetJobs(w http.ResponseWriter, r *http.Request) {
	filter, err := t.ToJobFilter(r.URL.Query())
	if err != nil {
		s.respondWithError(w, err)
		return
	}

	jobs, err := s.stores.Jobs.FindAll(r.Context(), filter)
	if err != nil {
		s.respondWithError(w, err)
		return
	}

	RespondJSONObjectWithCode(w, http.StatusOK, m.JobsResponse{Jobs: jobs})
}

func (s *routeList) GetJob(w http.ResponseWriter, r *http.Request) {
	job, err := s.stores.Jobs.Get(r.Context(), s.params(r, "id"))
	if err != nil {
		s.respondWithError(w, err)
		return
	}

	RespondJSONObjectWithCode(w, http.StatusOK, m.JobResponse{Job: job})
}

func (s *routeList) UpdateJob(w http.ResponseWriter, r *http.Request) {
	spec, err := s.parseUpdate(&m.JobUpdate{}, w, r)
	if err != nil {
		s.respondWithError(w, err)
		return
	}

	job, err := s.stores.Jobs.Update(r.Context(), s.params(r, "id"), spec)
	if err != nil {
		s.respondWithError(w, err)
		return
	}

	RespondJSONObjectWithCode(w, http.StatusOK, m.JobResponse{Job: job})
}

func (s *routeList) DeleteJob(w http.ResponseWriter, r *http.Request) {
	id := s.params(r, "id")
	if err := s.stores.Jobs.Remove(r.Context(), id); err != nil {
		s.respondWithError(w, err)
		return
	}

	RespondJSONObjectWithCode(w, http.StatusOK, types.Deleted{Deleted: id})
}

// AddUser lets an admin add a user, possibly another admin, and returns a token for it.
func (s *routeList) AddUser(w http.ResponseWriter, r *http.Request) {
	var newUser model.NewUser
	if err := s.parseAndValidatePayload(&newUser, w, r); err != nil {
		s.respondWithError(w, err)
		return
	}

	user, err := s.stores.Users.Register(r.Context(), newUser)
	if err != nil {
		s.respondWithError(w, err)
		return
	}

	token, err := s.issuer.Issue(user.Username, user.IsAdmin)
	if err != nil {
		s.respondWithError(w, err)
		return
	}

	RespondJSONObjectWithCode(w, http.StatusCreated, m.UserCreatedResponse{User: user, Token: token})
}

func (s *routeList) GetUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.stores.Users.FindAll(r.Context())
	if err != nil {
		s.respondWithError(w, err)
		return
	}

	RespondJSONObjectWithCode(w, http.StatusOK, m.UsersResponse{Users: users})
}

func (s *routeList) GetUser(w http.ResponseWriter, r *http.Request) {
	user, err := s.stores.Users.Get(r.Context(), s.params(r, "username"))
	if err != nil {
		s.respondWithError(w, err)
		return
	}

	RespondJSONObjectWithCode(w, http.StatusOK, m.UserResponse{User: user})
}

func (s *routeList) UpdateUser(w http.ResponseWriter, r *http.Request) {
	spec, err := s.parseUpdate(&m.UserUpdate{}, w, r)
	if err != nil {
		s.respondWithError(w, err)
		return
	}

	user, err := s.stores.Users.Update(r.Context(), s.params(r, "username"), spec)
	if err != nil {
		s.respondWithError(w, err)
		return
	}

	RespondJSONObjectWithCode(w, http.StatusOK, m.UserResponse{User: user})
}

func (s *routeList) DeleteUser(w http.ResponseWriter, r *http.Request) {
	username := s.params(r, "username")
	if err := s.stores.Users.Remove(r.Context(), username); err != nil {
		s.respondWithError(w, err)
		return
	}

	RespondJSONObjectWithCode(w, http.StatusOK, types.Deleted{Deleted: username})
}

func (s *routeList) respondWithToken(w http.ResponseWriter, code int, user *model.User) {
	token, err := s.issuer.Issue(user.Username, user.IsAdmin)
	if err != nil {
		s.respondWithError(w, err)
		return
	}

	RespondJSONObjectWithCode(w, code, m.TokenResponse{Token: token})
}

func (s *routeList) parseAndValidatePayload(obj interface{}, w http.ResponseWriter, r *http.Request) error {
	body, err := readBody(w, r)
	if err != nil {
		return err
	}
	return t.DecodeBody(body, obj)
}

func (s *routeList) parseUpdate(typed interface{}, w http.ResponseWriter, r *http.Request) (db.UpdateSpec, error) {
	body, err := readBody(w, r)
	if err != nil {
		return nil, err
	}
	return t.ToUpdateSpec(body, typed)
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return nil, e.NewValidationError(fmt.Sprintf("unable to read request body: %v", err))
	}
	return body, nil
}

package endpoint

import (
	"encoding/json"
	"errors"
	"net/http"

	e "github.com/joblyhq/jobly-api/rest/errors"
	m "github.com/joblyhq/jobly-api/rest/models"
)

// RespondJSONObjectWithCode writes the object and status header to the response. Important to note that if this is being
// used for an error case then an empty return will need to immediately follow the call to this function
func RespondJSONObjectWithCode(w http.ResponseWriter, code int, obj interface{}) {
	setCommonHeaders(w)
	var err error
	var jsonBytes []byte
	if obj != nil {
		jsonBytes, err = json.Marshal(obj)
	}
	writeJSONBytes(w, jsonBytes, err, code)
}

func writeJSONBytes(w http.ResponseWriter, jsonBytes []byte, err error, code int) {
	if err != nil {
		RespondWithError(w, errors.New("unable to marshal response"), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(code)
	if jsonBytes != nil {
		_, _ = w.Write(jsonBytes)
	}
}

// RespondWithError writes the error body `{"error": {"message", "status"}}` with the given status.
func RespondWithError(w http.ResponseWriter, err error, code int) {
	requestError := m.ModelError{
		Error: m.ErrorDetail{
			Message: err.Error(),
			Status:  code,
		},
	}
	RespondJSONObjectWithCode(w, code, requestError)
}

// RespondWithKnownError picks the status from the kind of err. Unclassified errors are reported as a
// generic internal error so that no details leak to the client.
func RespondWithKnownError(w http.ResponseWriter, err error) {
	code := e.StatusCode(err)
	if code == http.StatusInternalServerError {
		err = errors.New(http.StatusText(code))
	}
	RespondWithError(w, err, code)
}

func setCommonHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
}

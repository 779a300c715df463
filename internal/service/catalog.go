package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/target/catalog-console/internal/apiclient"
	"github.com/target/catalog-console/internal/domain/catalog"
	apperrors "github.com/target/catalog-console/internal/errors"
)

// DeleteFailedMessage is shown when the backend reports nothing was removed.
const DeleteFailedMessage = "An error occured"

// ErrNothingDeleted is the cause attached when a DELETE reports zero affected rows.
var ErrNothingDeleted = errors.New("nothing deleted")

func resourcePath(resource string, id int64) string {
	return "/" + resource + "/" + strconv.FormatInt(id, 10)
}

// getRecord loads one record. Any non-200 answer other than an auth rejection is
// reported as not found so the caller can send the browser to /404.
func getRecord[T any](ctx context.Context, api Requester, resource string, id int64) (T, error) {
	var zero T
	op := "get " + resource
	res, err := apiclient.Fetch[T](ctx, api, apiclient.Request{Method: http.MethodGet, Path: resourcePath(resource, id)})
	if err != nil {
		return zero, apperrors.WrapTransport(err, op)
	}
	switch res.StatusCode {
	case http.StatusOK:
		return res.Data, nil
	case http.StatusUnauthorized, http.StatusForbidden:
		return zero, statusError(op, res.StatusCode, res.Message)
	default:
		return zero, apperrors.NotFoundf("%s %d not found", resource, id)
	}
}

func createRecord(ctx context.Context, api Requester, resource string, body any) (int64, error) {
	created, err := expect[catalog.Created](ctx, api, apiclient.Request{
		Method: http.MethodPost,
		Path:   "/" + resource,
		Body:   body,
	}, http.StatusCreated, "create "+resource)
	if err != nil {
		return 0, err
	}
	return created.ID, nil
}

func updateRecord(ctx context.Context, api Requester, resource string, id int64, body any) error {
	_, err := expect[struct{}](ctx, api, apiclient.Request{
		Method: http.MethodPatch,
		Path:   resourcePath(resource, id),
		Body:   body,
	}, http.StatusOK, "update "+resource)
	return err
}

func deleteRecord(ctx context.Context, api Requester, resource string, id int64) (catalog.DeleteResult, error) {
	res, err := expect[catalog.DeleteResult](ctx, api, apiclient.Request{
		Method: http.MethodDelete,
		Path:   resourcePath(resource, id),
	}, http.StatusOK, "delete "+resource)
	if err != nil {
		return res, err
	}
	if res.Affected == 0 {
		return res, apperrors.Wrap(
			fmt.Errorf("delete %s %d: %w", resource, id, ErrNothingDeleted),
			apperrors.ErrCodeNotFound,
			DeleteFailedMessage,
		)
	}
	return res, nil
}

func allCompanies(ctx context.Context, api Requester) ([]catalog.Company, error) {
	list, err := expectCollection[[]catalog.Company](ctx, api, apiclient.Request{
		Method: http.MethodGet,
		Path:   "/company/all",
	}, "list all companies")
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []catalog.Company{}
	}
	return list, nil
}

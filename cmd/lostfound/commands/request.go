package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fivetwenty-io/lostfound-e2e/internal/constants"
	lfhttp "github.com/fivetwenty-io/lostfound-e2e/internal/http"
	"github.com/spf13/cobra"
)

type requestOutput struct {
	Status     int         `json:"status"      yaml:"status"`
	StatusText string      `json:"status_text" yaml:"status_text"`
	Body       interface{} `json:"body"        yaml:"body"`
}

func newRequestCommand(a *app) *cobra.Command {
	var (
		data    string
		token   string
		headers []string
		asAdmin bool
		asUser  bool
	)

	cmd := &cobra.Command{
		Use:   "request METHOD PATH",
		Short: "Send a single request through the test dispatcher",
		Long: `Send a single request exactly the way the test suites do. Every status code
is printed as a result; only transport failures are errors.

PATH is appended to the API base URL unless it is an absolute URL.`,
		Example: `  lostfound request GET /api/v1/lost-items --as-user
  lostfound request PATCH /api/v1/admin/users/7 --as-admin --data '{"isBanned":true}'`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			headerMap, err := parseHeaders(headers)
			if err != nil {
				return err
			}

			client := a.client()

			if token == "" && (asAdmin || asUser) {
				account := a.cfg.Auth.User
				if asAdmin {
					account = a.cfg.Auth.Admin
				}

				token, err = a.authenticator(client).Authenticate(cmd.Context(), account.Email, account.Password)
				if err != nil {
					return fmt.Errorf("sign-in failed: %w", err)
				}
			}

			req := &lfhttp.Request{
				Method:  args[0],
				URL:     args[1],
				Headers: headerMap,
				Token:   token,
			}
			if data != "" {
				req.Body = []byte(data)
			}

			resp, err := client.Do(cmd.Context(), req)
			if err != nil {
				return err
			}

			out := requestOutput{Status: resp.StatusCode, StatusText: resp.Status, Body: resp.Data}

			err = render(cmd.OutOrStdout(), a.output(), out, [][2]string{
				{"Status", fmt.Sprintf("%d %s", resp.StatusCode, resp.Status)},
			})
			if err != nil {
				return err
			}

			// The body goes below the table so it is never wrapped into a cell.
			if isTable(a.output()) && len(resp.Body) > 0 {
				fmt.Fprintln(cmd.OutOrStdout(), prettyBody(resp.Body))
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&data, "data", "d", "", "JSON request body")
	cmd.Flags().StringVarP(&token, "token", "t", "", "bearer token")
	cmd.Flags().StringArrayVarP(&headers, "header", "H", nil, "extra header as key:value (repeatable)")
	cmd.Flags().BoolVar(&asAdmin, "as-admin", false, "sign in as the configured admin first")
	cmd.Flags().BoolVar(&asUser, "as-user", false, "sign in as the configured test user first")
	cmd.MarkFlagsMutuallyExclusive("as-admin", "as-user")

	return cmd
}

func parseHeaders(headers []string) (map[string]string, error) {
	out := make(map[string]string, len(headers))

	for _, header := range headers {
		key, value, ok := strings.Cut(header, ":")
		if !ok || strings.TrimSpace(key) == "" {
			return nil, fmt.Errorf("%w: %q", constants.ErrInvalidHeaderFormat, header)
		}

		out[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}

	return out, nil
}

func prettyBody(body []byte) string {
	var buf bytes.Buffer

	if json.Indent(&buf, body, "", "  ") != nil {
		return string(body)
	}

	return buf.String()
}

/*
 *  Copyright (c) 2024. Dell Technologies or its subsidiaries.
 *
 *  Licensed under the Apache License, Version 2.0 (the "License");
 *  you may not use this file except in compliance with the License.
 *  You may obtain a copy of the License at
 *
 *       http://www.apache.org/licenses/LICENSE-2.0
 *
 *  Unless required by applicable law or agreed to in writing, software
 *  distributed under the License is distributed on an "AS IS" BASIS,
 *  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 *  See the License for the specific language governing permissions and
 *  limitations under the License.
 */

package modules

import (
	"context"

	"powerstore-ctl/client"
	"powerstore-ctl/utils"
)

// CertificateParams defines one certificate task. Exchange and reset always
// run on the array, those two operations report changed on every apply. The
// same applies to re-installing certificate content on an existing id, the
// array does not expose the installed PEM for comparison.
type CertificateParams struct {
	CertificateID string `json:"certificate_id,omitempty"`
	Type          string `json:"certificate_type,omitempty"`
	Service       string `json:"service,omitempty"`
	Scope         string `json:"scope,omitempty"`
	Certificate   string `json:"certificate,omitempty"`
	PrivateKey    string `json:"private_key,omitempty"`
	Passphrase    string `json:"passphrase,omitempty"`
	IsCurrent     *bool  `json:"is_current,omitempty"`

	RemoteAddress  string `json:"remote_address,omitempty"`
	RemotePort     int    `json:"remote_port,omitempty"`
	RemoteUser     string `json:"remote_user,omitempty"`
	RemotePassword string `json:"remote_password,omitempty"`

	Reset bool   `json:"reset,omitempty"`
	State string `json:"state"`
}

func validateCertificateParams(ctx context.Context, params *CertificateParams) error {
	if params.State != StatePresent {
		return utils.Errorln(ctx,
			"certificates cannot be deleted, state must be present")
	}

	exchange := params.RemoteAddress != ""
	if exchange && params.Reset {
		return utils.Errorln(ctx, "exchange and reset are mutually exclusive")
	}
	if (exchange || params.Reset) && params.Service == "" {
		return utils.Errorln(ctx, "service is required for exchange and reset")
	}
	if exchange && (params.RemoteUser == "" || params.RemotePassword == "") {
		return utils.Errorln(ctx,
			"remote_user and remote_password are required for an exchange")
	}
	if !exchange && !params.Reset &&
		params.CertificateID == "" && params.Certificate == "" {
		return utils.Errorln(ctx,
			"one of certificate_id and certificate is required")
	}
	return nil
}

// ApplyCertificate installs, modifies, exchanges or resets certificates
func ApplyCertificate(ctx context.Context, cli client.CertificateClient,
	params *CertificateParams) (*Result, error) {
	if err := validateCertificateParams(ctx, params); err != nil {
		return nil, err
	}

	if params.RemoteAddress != "" {
		port := params.RemotePort
		if port == 0 {
			port = 443
		}
		err := cli.ExchangeCertificate(ctx, &client.ExchangeCertificateParams{
			Service:  params.Service,
			Address:  params.RemoteAddress,
			Port:     port,
			Username: params.RemoteUser,
			Password: params.RemotePassword,
		})
		if err != nil {
			return nil, err
		}
		return &Result{Changed: true}, nil
	}

	if params.Reset {
		if err := cli.ResetCertificates(ctx, params.Service); err != nil {
			return nil, err
		}
		return &Result{Changed: true}, nil
	}

	if params.CertificateID == "" {
		id, err := cli.CreateCertificate(ctx, &client.CreateCertificateParams{
			Type:        params.Type,
			Service:     params.Service,
			Scope:       params.Scope,
			Certificate: params.Certificate,
			PrivateKey:  params.PrivateKey,
			Passphrase:  params.Passphrase,
			IsCurrent:   params.IsCurrent,
		})
		if err != nil {
			return nil, err
		}
		return &Result{Changed: true, ID: id}, nil
	}

	cert, err := cli.GetCertificateByID(ctx, params.CertificateID)
	if err != nil {
		return nil, err
	}
	if cert == nil {
		return nil, utils.Errorf(ctx, "certificate %s not found", params.CertificateID)
	}

	modify := &client.ModifyCertificateParams{}
	changed := false

	// The array never returns the installed PEM, so re-sending certificate
	// content cannot be compared and always reports changed.
	if params.Certificate != "" {
		modify.Certificate = &params.Certificate
		changed = true
	}
	if current := boolUpdate(cert.IsCurrent, params.IsCurrent); current != nil {
		modify.IsCurrent = current
		changed = true
	}

	if !changed {
		return &Result{Changed: false, ID: cert.ID, Details: cert}, nil
	}
	if err := cli.ModifyCertificate(ctx, cert.ID, modify); err != nil {
		return nil, err
	}
	return &Result{Changed: true, ID: cert.ID}, nil
}

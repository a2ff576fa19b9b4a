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

package client

import (
	"context"
	"fmt"
	"net/url"
)

const certificateSelectFields = "id,type,service,scope,is_current,is_valid," +
	"members(subject,serial_number,signature_algorithm,key_length," +
	"public_key_algorithm,valid_from,valid_to)"

// CertificateMember describes one x509 certificate in a certificate chain
type CertificateMember struct {
	Subject            string `json:"subject,omitempty"`
	SerialNumber       string `json:"serial_number,omitempty"`
	SignatureAlgorithm string `json:"signature_algorithm,omitempty"`
	KeyLength          int    `json:"key_length,omitempty"`
	PublicKeyAlgorithm string `json:"public_key_algorithm,omitempty"`
	ValidFrom          string `json:"valid_from,omitempty"`
	ValidTo            string `json:"valid_to,omitempty"`
}

// Certificate describes one certificate instance stored on the array
type Certificate struct {
	ID        string              `json:"id"`
	Type      string              `json:"type"`
	Service   string              `json:"service"`
	Scope     string              `json:"scope,omitempty"`
	IsCurrent bool                `json:"is_current,omitempty"`
	IsValid   bool                `json:"is_valid,omitempty"`
	Members   []CertificateMember `json:"members,omitempty"`
}

// CreateCertificateParams defines create certificate request
type CreateCertificateParams struct {
	Type        string `json:"type"`
	Service     string `json:"service"`
	Scope       string `json:"scope,omitempty"`
	Certificate string `json:"certificate"`
	PrivateKey  string `json:"private_key,omitempty"`
	Passphrase  string `json:"passphrase,omitempty"`
	IsCurrent   *bool  `json:"is_current,omitempty"`
}

// ModifyCertificateParams defines modify certificate request, nil fields are left unchanged
type ModifyCertificateParams struct {
	Certificate *string `json:"certificate,omitempty"`
	IsCurrent   *bool   `json:"is_current,omitempty"`
}

// ExchangeCertificateParams defines the certificate exchange request used to
// establish a trust relation with a peer array before replication setup
type ExchangeCertificateParams struct {
	Service  string `json:"service"`
	Address  string `json:"address"`
	Port     int    `json:"port"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// CertificateClient defines interfaces for certificate operations
type CertificateClient interface {
	// GetCertificateByID used to get certificate details by id
	GetCertificateByID(ctx context.Context, id string) (*Certificate, error)
	// ListCertificates used to get all certificates of the array
	ListCertificates(ctx context.Context) ([]Certificate, error)
	// CreateCertificate used to install a certificate on the array
	CreateCertificate(ctx context.Context, params *CreateCertificateParams) (string, error)
	// ModifyCertificate used to modify a certificate
	ModifyCertificate(ctx context.Context, id string, params *ModifyCertificateParams) error
	// ExchangeCertificate used to exchange certificates with a peer array
	ExchangeCertificate(ctx context.Context, params *ExchangeCertificateParams) error
	// ResetCertificates used to regenerate the certificates of one service
	ResetCertificates(ctx context.Context, service string) error
}

// GetCertificateByID used to get certificate details by id
func (cli *Client) GetCertificateByID(ctx context.Context, id string) (*Certificate, error) {
	query := url.Values{}
	query.Set("select", certificateSelectFields)

	var cert Certificate
	exists, err := cli.getResource(ctx, "/x509_certificate/"+id, query, &cert)
	if err != nil || !exists {
		return nil, err
	}
	return &cert, nil
}

// ListCertificates used to get all certificates of the array
func (cli *Client) ListCertificates(ctx context.Context) ([]Certificate, error) {
	query := url.Values{}
	query.Set("select", certificateSelectFields)

	var certs []Certificate
	if err := cli.getBatchObjs(ctx, "/x509_certificate", query, &certs); err != nil {
		return nil, err
	}
	return certs, nil
}

// CreateCertificate used to install a certificate on the array
func (cli *Client) CreateCertificate(ctx context.Context, params *CreateCertificateParams) (string, error) {
	resp, err := cli.Post(ctx, "/x509_certificate", params)
	if err != nil {
		return "", err
	}

	id, err := cli.resolveMutation(ctx, resp)
	if err != nil {
		return "", fmt.Errorf("create %s certificate error: %w", params.Service, err)
	}
	return id, nil
}

// ModifyCertificate used to modify a certificate
func (cli *Client) ModifyCertificate(ctx context.Context, id string, params *ModifyCertificateParams) error {
	resp, err := cli.Patch(ctx, "/x509_certificate/"+id, params)
	if err != nil {
		return err
	}

	if _, err := cli.resolveMutation(ctx, resp); err != nil {
		return fmt.Errorf("modify certificate %s error: %w", id, err)
	}
	return nil
}

// ExchangeCertificate used to exchange certificates with a peer array.
// The exchange always runs on the array, there is no state to compare against.
func (cli *Client) ExchangeCertificate(ctx context.Context, params *ExchangeCertificateParams) error {
	resp, err := cli.Post(ctx, "/x509_certificate/exchange", params)
	if err != nil {
		return err
	}

	if _, err := cli.resolveMutation(ctx, resp); err != nil {
		return fmt.Errorf("exchange certificates with %s error: %w", params.Address, err)
	}
	return nil
}

// ResetCertificates used to regenerate the certificates of one service
func (cli *Client) ResetCertificates(ctx context.Context, service string) error {
	data := map[string]interface{}{"service": service}

	resp, err := cli.Post(ctx, "/x509_certificate/reset_certificates", data)
	if err != nil {
		return err
	}

	if _, err := cli.resolveMutation(ctx, resp); err != nil {
		return fmt.Errorf("reset %s certificates error: %w", service, err)
	}
	return nil
}

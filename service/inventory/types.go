// Package inventory fetches security groups and instances from EC2 and
// converts them into the records the analysis engines consume.
package inventory

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
)

// Unrestricted address ranges. A permission listing either one is reachable
// from the whole internet.
const (
	UnrestrictedIPv4 = "0.0.0.0/0"
	UnrestrictedIPv6 = "::/0"
)

// EC2ClientAPI defines the EC2 client methods used by this service.
type EC2ClientAPI interface {
	DescribeSecurityGroups(ctx context.Context, params *ec2.DescribeSecurityGroupsInput, optFns ...func(*ec2.Options)) (*ec2.DescribeSecurityGroupsOutput, error)
	DescribeNetworkInterfaces(ctx context.Context, params *ec2.DescribeNetworkInterfacesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeNetworkInterfacesOutput, error)
	DescribeInstances(ctx context.Context, params *ec2.DescribeInstancesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeInstancesOutput, error)
}

// PermissionRecord is one ingress rule of a security group.
type PermissionRecord struct {
	FromPort   *int32
	ToPort     *int32
	Protocol   string
	IPv4Ranges []string
	IPv6Ranges []string
}

// PublicIPv4 reports whether the permission allows the unrestricted IPv4 range.
func (p PermissionRecord) PublicIPv4() bool {
	for _, cidr := range p.IPv4Ranges {
		if cidr == UnrestrictedIPv4 {
			return true
		}
	}

	return false
}

// PublicIPv6 reports whether the permission allows the unrestricted IPv6 range.
func (p PermissionRecord) PublicIPv6() bool {
	for _, cidr := range p.IPv6Ranges {
		if cidr == UnrestrictedIPv6 {
			return true
		}
	}

	return false
}

// Public reports whether the permission is reachable from the internet.
func (p PermissionRecord) Public() bool {
	return p.PublicIPv4() || p.PublicIPv6()
}

// SecurityGroupRecord is a security group with its ingress permissions in
// catalog order.
type SecurityGroupRecord struct {
	ID          string
	Name        string
	Permissions []PermissionRecord
}

// InstanceRecord is one compute resource and its attached groups.
type InstanceRecord struct {
	ID       string
	Name     string
	PublicIP string
	Running  bool
	GroupIDs []string
}

// Service defines the EC2 inventory interface.
type Service interface {
	GetSecurityGroups(ctx context.Context) ([]SecurityGroupRecord, error)
	GetActiveGroupIDs(ctx context.Context) (map[string]bool, error)
	GetInstances(ctx context.Context) ([]InstanceRecord, error)
}

type service struct {
	client EC2ClientAPI
}

// NewService creates a new inventory service.
func NewService(cfg aws.Config) Service {
	return &service{
		client: ec2.NewFromConfig(cfg),
	}
}

// NewServiceWithClient creates an inventory service with a provided client
// (for testing).
func NewServiceWithClient(client EC2ClientAPI) Service {
	return &service{
		client: client,
	}
}

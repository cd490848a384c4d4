package inventory

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
)

// GetSecurityGroups returns every security group in the region with its
// ingress permissions, preserving API order.
func (s *service) GetSecurityGroups(ctx context.Context) ([]SecurityGroupRecord, error) {
	var records []SecurityGroupRecord

	paginator := ec2.NewDescribeSecurityGroupsPaginator(s.client, &ec2.DescribeSecurityGroupsInput{})

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to describe security groups: %w", err)
		}

		for _, sg := range page.SecurityGroups {
			records = append(records, toGroupRecord(sg))
		}
	}

	return records, nil
}

func toGroupRecord(sg types.SecurityGroup) SecurityGroupRecord {
	record := SecurityGroupRecord{
		ID:   aws.ToString(sg.GroupId),
		Name: aws.ToString(sg.GroupName),
	}

	for _, perm := range sg.IpPermissions {
		p := PermissionRecord{
			FromPort: perm.FromPort,
			ToPort:   perm.ToPort,
			Protocol: aws.ToString(perm.IpProtocol),
		}

		for _, r := range perm.IpRanges {
			p.IPv4Ranges = append(p.IPv4Ranges, aws.ToString(r.CidrIp))
		}

		for _, r := range perm.Ipv6Ranges {
			p.IPv6Ranges = append(p.IPv6Ranges, aws.ToString(r.CidrIpv6))
		}

		record.Permissions = append(record.Permissions, p)
	}

	return record
}

// GetActiveGroupIDs returns the IDs of every security group attached to a
// network interface. Groups outside this set are candidates for the
// unused-group check.
func (s *service) GetActiveGroupIDs(ctx context.Context) (map[string]bool, error) {
	active := make(map[string]bool)

	paginator := ec2.NewDescribeNetworkInterfacesPaginator(s.client, &ec2.DescribeNetworkInterfacesInput{})

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to describe network interfaces: %w", err)
		}

		for _, eni := range page.NetworkInterfaces {
			for _, group := range eni.Groups {
				active[aws.ToString(group.GroupId)] = true
			}
		}
	}

	return active, nil
}

// GetInstances returns every EC2 instance in the region with its running
// state, public IP, and attached group IDs.
func (s *service) GetInstances(ctx context.Context) ([]InstanceRecord, error) {
	var records []InstanceRecord

	paginator := ec2.NewDescribeInstancesPaginator(s.client, &ec2.DescribeInstancesInput{})

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to describe instances: %w", err)
		}

		for _, reservation := range page.Reservations {
			for _, instance := range reservation.Instances {
				records = append(records, toInstanceRecord(instance))
			}
		}
	}

	return records, nil
}

func toInstanceRecord(instance types.Instance) InstanceRecord {
	record := InstanceRecord{
		ID:       aws.ToString(instance.InstanceId),
		Name:     instanceName(instance.Tags),
		PublicIP: aws.ToString(instance.PublicIpAddress),
	}

	if instance.State != nil {
		record.Running = instance.State.Name == types.InstanceStateNameRunning
	}

	for _, sg := range instance.SecurityGroups {
		record.GroupIDs = append(record.GroupIDs, aws.ToString(sg.GroupId))
	}

	return record
}

func instanceName(tags []types.Tag) string {
	for _, tag := range tags {
		if aws.ToString(tag.Key) == "Name" {
			return aws.ToString(tag.Value)
		}
	}

	return ""
}

package forgejo_test

import (
	"context"
	"fmt"

	"code.gitea.io/sdk/gitea"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	gitserver "github.com/sparsick/testcontainers-gitserver"
	"github.com/sparsick/testcontainers-gitserver/forgejo"
)

var _ = Describe("Forgejo server", Ordered, func() {
	var (
		ctx    context.Context
		logger gitserver.Logger
		server *forgejo.Server
	)

	BeforeAll(func() {
		ctx = context.Background()
		logger = gitserver.NewWriterLogger(GinkgoWriter)

		var err error
		server, err = forgejo.NewServer(ctx,
			forgejo.WithLogger(logger),
			forgejo.WithSSHKeyAuth(),
		)
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(func() {
			Expect(server.Cleanup()).To(Succeed())
		})
	})

	It("exposes the repository URLs", func() {
		Expect(server.HTTPURL()).To(Equal(fmt.Sprintf("http://%s:%s/gitUser/testRepo.git", server.Host, server.HTTPPort)))

		sshURL, err := server.SSHURL()
		Expect(err).NotTo(HaveOccurred())
		Expect(sshURL).To(Equal(fmt.Sprintf("ssh://git@%s:%s/gitUser/testRepo.git", server.Host, server.SSHPort)))

		Expect(server.APIURL()).To(HaveSuffix("/api/v1"))
	})

	It("answers the REST API as the init user", func() {
		client, err := server.APIClient(ctx)
		Expect(err).NotTo(HaveOccurred())

		repo, _, err := client.GetRepo(server.InitUserName(), server.RepoName())
		Expect(err).NotTo(HaveOccurred())
		Expect(repo.Name).To(Equal("testRepo"))
		Expect(repo.Empty).To(BeTrue())

		keys, _, err := client.ListMyPublicKeys(gitea.ListPublicKeysOptions{})
		Expect(err).NotTo(HaveOccurred())
		Expect(keys).To(HaveLen(1))
		Expect(keys[0].Title).To(Equal("ssh-key"))
	})

	It("accepts pushes over HTTP with basic auth", func() {
		local, err := gitserver.NewLocalRepo(gitserver.WithTempDir(GinkgoT().TempDir()), gitserver.WithRepoLogger(logger))
		Expect(err).NotTo(HaveOccurred())
		Expect(local.CreateFile("testFile", "over http")).To(Succeed())
		_, err = local.Commit("add test file")
		Expect(err).NotTo(HaveOccurred())

		Expect(local.AddRemote("origin", server.HTTPURL())).To(Succeed())
		Expect(local.Push(ctx, server.BasicAuth())).To(Succeed())

		clone, err := gitserver.CloneLocalRepo(ctx, server.HTTPURL(), server.BasicAuth(), gitserver.WithTempDir(GinkgoT().TempDir()))
		Expect(err).NotTo(HaveOccurred())
		Expect(clone.ReadFile("testFile")).To(Equal("over http"))
	})

	It("rejects a wrong password", func() {
		wrong := gitserver.NewBasicAuthCredentials(server.InitUserName(), "wrong")
		_, err := gitserver.CloneLocalRepo(ctx, server.HTTPURL(), wrong.AuthMethod(), gitserver.WithTempDir(GinkgoT().TempDir()))
		Expect(err).To(HaveOccurred())
	})

	It("serves the repository over SSH with the registered key", func() {
		sshURL, err := server.SSHURL()
		Expect(err).NotTo(HaveOccurred())
		auth, err := server.PublicKeyAuth()
		Expect(err).NotTo(HaveOccurred())

		clone, err := gitserver.CloneLocalRepo(ctx, sshURL, auth, gitserver.WithTempDir(GinkgoT().TempDir()))
		Expect(err).NotTo(HaveOccurred())
		Expect(clone.ReadFile("testFile")).To(Equal("over http"))
	})

	It("hands out a nanogit client", func() {
		client, err := server.NanogitClient()
		Expect(err).NotTo(HaveOccurred())

		authorized, err := client.IsAuthorized(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(authorized).To(BeTrue())

		exists, err := client.RepoExists(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(exists).To(BeTrue())
	})
})

var _ = Describe("Forgejo server with an existing repository", Ordered, func() {
	var (
		ctx    context.Context
		server *forgejo.Server
	)

	BeforeAll(func() {
		ctx = context.Background()

		local, err := gitserver.NewLocalRepo(gitserver.WithTempDir(GinkgoT().TempDir()))
		Expect(err).NotTo(HaveOccurred())
		Expect(local.CreateFile("testFile", "existing content")).To(Succeed())
		_, err = local.Commit("init")
		Expect(err).NotTo(HaveOccurred())

		server, err = forgejo.NewServer(ctx,
			forgejo.WithLogger(gitserver.NewWriterLogger(GinkgoWriter)),
			forgejo.WithInitUserName("importer"),
			forgejo.WithInitUserPassword("imp0rt-pass"),
			forgejo.WithGitRepo("imported"),
			forgejo.WithCopyExistingGitRepo(local.Path),
		)
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(func() {
			Expect(server.Cleanup()).To(Succeed())
		})
	})

	It("contains the pushed history", func() {
		clone, err := gitserver.CloneLocalRepo(ctx, server.HTTPURL(), server.BasicAuth(), gitserver.WithTempDir(GinkgoT().TempDir()))
		Expect(err).NotTo(HaveOccurred())
		Expect(clone.ReadFile("testFile")).To(Equal("existing content"))
	})

	It("has no SSH access without key auth", func() {
		Expect(server.SSHClientIdentity()).To(BeNil())

		_, err := server.SSHURL()
		Expect(err).To(MatchError(gitserver.ErrSSHKeyAuthNotConfigured))

		_, err = server.PublicKeyAuth()
		Expect(err).To(MatchError(gitserver.ErrSSHKeyAuthNotConfigured))
	})
})

var _ = Describe("Forgejo server with an auto-initialized repository", Ordered, func() {
	It("can be cloned right away", func() {
		ctx := context.Background()

		server, err := forgejo.NewServer(ctx,
			forgejo.WithLogger(gitserver.NewWriterLogger(GinkgoWriter)),
			forgejo.WithImage(forgejo.Forgejo11.ImageName()),
			forgejo.WithAutoInit(),
		)
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(func() {
			Expect(server.Cleanup()).To(Succeed())
		})

		clone, err := gitserver.CloneLocalRepo(ctx, server.HTTPURL(), server.BasicAuth(), gitserver.WithTempDir(GinkgoT().TempDir()))
		Expect(err).NotTo(HaveOccurred())

		head, err := clone.Repository().Head()
		Expect(err).NotTo(HaveOccurred())
		Expect(head.Name().Short()).To(Equal("main"))
	})
})

package github

const repositoriesConnection = `
    repositories(first: $first, after: $after, ownerAffiliations: OWNER, orderBy: {direction: DESC, field: STARGAZERS}) {
      totalCount
      nodes {
        stargazers {
          totalCount
        }
      }
      pageInfo {
        hasNextPage
        endCursor
      }
    }`

const userTotals = `
    name
    login
    repositoriesContributedTo(first: 1, contributionTypes: [COMMIT, ISSUE, PULL_REQUEST, REPOSITORY]) {
      totalCount
    }
    pullRequests(first: 1) {
      totalCount
    }
    issues {
      totalCount
    }
    followers {
      totalCount
    }`

const profileQuery = `
query userInfo($login: String!, $first: Int!, $after: String) {
  user(login: $login) {` + userTotals + `
    contributionsCollection {
      totalCommitContributions
      restrictedContributionsCount
    }` + repositoriesConnection + `
  }
}`

const profileSinceQuery = `
query userInfoSince($login: String!, $first: Int!, $after: String, $from: DateTime!) {
  user(login: $login) {` + userTotals + `
    contributionsCollection(from: $from) {
      totalCommitContributions
      restrictedContributionsCount
      totalIssueContributions
      totalPullRequestContributions
      totalRepositoryContributions
    }` + repositoriesConnection + `
  }
}`

const repositoriesQuery = `
query userRepositories($login: String!, $first: Int!, $after: String) {
  user(login: $login) {` + repositoriesConnection + `
  }
}`
